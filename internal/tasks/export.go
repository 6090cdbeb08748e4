package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/lectern/internal/formatter"
	"github.com/desertthunder/lectern/internal/models"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for course exports.
type ExportOpts struct {
	Format     string  // Export format: csv, markdown, text
	OutputDir  string  // Base output directory (default: course_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 3)
	RateLimit  float64 // Lectures per second (default: 5)
}

// LectureExportResult records the outcome for one lecture.
type LectureExportResult struct {
	Lecture *models.Lecture
	Path    string
	Err     error
}

// CourseExportResult contains all data from a course export run.
type CourseExportResult struct {
	TotalLectures   int
	SuccessCount    int
	FailedCount     int
	OutputDirectory string
	Results         []LectureExportResult
}

type exportJob struct {
	step    int
	lecture *models.Lecture
}

// ExportCourse writes every lecture of the course to a file, a few lectures at
// a time behind a rate limiter so a large course does not hammer the storage
// layer. Partial failures are recorded per lecture instead of aborting the run.
func (e *LectureEngine) ExportCourse(ctx context.Context, progress chan<- ProgressUpdate, courseID, userID int64, opts ExportOpts) (*CourseExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("course_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(progress, collectLecturesUpdate(courseID))

	lectures, err := e.store.Lectures().ListByCourse(courseID, userID)
	if err != nil {
		return nil, err
	}

	result := &CourseExportResult{
		TotalLectures:   len(lectures),
		OutputDirectory: opts.OutputDir,
		Results:         make([]LectureExportResult, 0, len(lectures)),
	}

	if len(lectures) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(lectures))
	results := make(chan LectureExportResult, len(lectures))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, progress, jobs, results, userID, len(lectures), opts)
	}

	for i, lecture := range lectures {
		jobs <- exportJob{step: i + 1, lecture: lecture}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for r := range results {
		if r.Err != nil {
			result.FailedCount++
		} else {
			result.SuccessCount++
		}
		result.Results = append(result.Results, r)
	}

	return result, nil
}

func (e *LectureEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	progress chan<- ProgressUpdate,
	jobs <-chan exportJob,
	results chan<- LectureExportResult,
	userID int64,
	total int,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- LectureExportResult{Lecture: job.lecture, Err: err}
			continue
		}

		e.sendProgress(progress, exportLectureUpdate(job.step, total, job.lecture))

		path, err := e.exportLecture(job.lecture, userID, opts)
		if err != nil {
			e.sendProgress(progress, exportFailedUpdate(job.step, total, job.lecture, err))
			results <- LectureExportResult{Lecture: job.lecture, Err: err}
			continue
		}

		e.sendProgress(progress, exportDoneUpdate(job.step, total, job.lecture, path))
		results <- LectureExportResult{Lecture: job.lecture, Path: path}
	}
}

func (e *LectureEngine) exportLecture(lecture *models.Lecture, userID int64, opts ExportOpts) (string, error) {
	transcripts, err := e.store.Transcripts().ListByLecture(lecture.ID(), userID)
	if err != nil {
		return "", fmt.Errorf("failed to collect transcripts: %w", err)
	}

	export := &formatter.LectureExport{
		Lecture:     lecture,
		Transcripts: transcripts,
	}

	return formatter.WriteLectureExport(export, opts.OutputDir, opts.Format)
}
