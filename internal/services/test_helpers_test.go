package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"suilog/internal/contribution"
	"suilog/internal/models"
	"suilog/internal/pdf"
	"suilog/internal/repositories"
	"suilog/internal/sui"
	"suilog/internal/wallet"
)

// fakeTaskRepo is an in-memory TaskRepository for service tests.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]models.Task{}}
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) StoreBatch(_ context.Context, tasks []models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Task
	for _, t := range r.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedTo != nil {
			if t.AssignedTo == nil || !wallet.Equal(*t.AssignedTo, *filter.AssignedTo) {
				continue
			}
		}
		if filter.Unassigned && t.AssignedTo != nil {
			continue
		}
		if filter.RecurringParentID != nil {
			if t.RecurringParentID == nil || *t.RecurringParentID != *filter.RecurringParentID {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id string, to models.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.Status = to
	t.CompletedAt = nil
	t.ActualTime = nil
	r.tasks[id] = t
	return nil
}

func (r *fakeTaskRepo) Complete(_ context.Context, id string, actualTime int, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.Status = models.StatusCompleted
	t.ActualTime = &actualTime
	t.CompletedAt = &completedAt
	r.tasks[id] = t
	return nil
}

func (r *fakeTaskRepo) UpdateAssignee(_ context.Context, id string, assignedTo *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.AssignedTo = assignedTo
	r.tasks[id] = t
	return nil
}

// fakeProjectRepo is an in-memory ProjectRepository.
type fakeProjectRepo struct {
	mu      sync.Mutex
	project *models.Project
	saves   int
}

func (r *fakeProjectRepo) Get(_ context.Context, id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.project == nil || r.project.ID != id {
		return nil, repositories.ErrNotFound
	}
	p := *r.project
	return &p, nil
}

func (r *fakeProjectRepo) Save(_ context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *project
	r.project = &p
	r.saves++
	return nil
}

// fakeConfirmationRepo is an in-memory ConfirmationRepository.
type fakeConfirmationRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []*models.CompletionConfirmation
}

func (r *fakeConfirmationRepo) Create(_ context.Context, c *models.CompletionConfirmation) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	copied := *c
	r.records = append(r.records, &copied)
	return c.ID, nil
}

func (r *fakeConfirmationRepo) GetLatest(_ context.Context, projectID string) (*models.CompletionConfirmation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].ProjectID == projectID {
			c := *r.records[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeConfirmationRepo) IncrementAttempts(_ context.Context, id int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.records {
		if c.ID == id {
			c.Attempts++
			return c.Attempts, nil
		}
	}
	return 0, repositories.ErrNotFound
}

func (r *fakeConfirmationRepo) MarkConfirmed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.records {
		if c.ID == id {
			c.Confirmed = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeConfirmationRepo) ExpireNow(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.records {
		if c.ID == id {
			c.ExpiresAt = time.Now()
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeConfirmationRepo) CountRecentSends(_ context.Context, projectID string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.records {
		if c.ProjectID == projectID && !c.SentAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// fakeMinter records mint calls and can be forced to fail.
type fakeMinter struct {
	digest string
	err    error
	calls  []sui.MintParams
}

func (m *fakeMinter) MintCompletionProof(_ context.Context, p sui.MintParams) (string, error) {
	m.calls = append(m.calls, p)
	if m.err != nil {
		return "", m.err
	}
	if m.digest == "" {
		return "fake-digest", nil
	}
	return m.digest, nil
}

// fakeCertGen records generated certificates without touching disk.
type fakeCertGen struct {
	calls []pdf.CertificateData
	err   error
}

func (g *fakeCertGen) GenerateCertificate(data pdf.CertificateData) (string, error) {
	g.calls = append(g.calls, data)
	if g.err != nil {
		return "", g.err
	}
	return "/tmp/certificate.pdf", nil
}

// fakeEmail captures outgoing mail.
type fakeEmail struct {
	codes        []string
	certificates []string
}

func (e *fakeEmail) SendConfirmationCode(_, _, code string) error {
	e.codes = append(e.codes, code)
	return nil
}

func (e *fakeEmail) SendCompletionCertificate(email, _, _ string, _ contribution.Summary) error {
	e.certificates = append(e.certificates, email)
	return nil
}
