package cleanup

import "log/slog"

// Job is a named teardown step run during shutdown.
type Job struct {
	Name string
	F    func() error
}

var (
	jobs []*Job
)

func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs in registration order.
func CleanUp() {
	for _, j := range jobs {
		slog.Info("cleanup job started", slog.String("job", j.Name))
		if err := j.F(); err != nil {
			slog.Error("cleanup job failed", slog.String("job", j.Name), slog.String("error", err.Error()))
			continue
		}
		slog.Info("cleanup job finished", slog.String("job", j.Name))
	}
}
