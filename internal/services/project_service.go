package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"suilog/internal/contribution"
	"suilog/internal/models"
	"suilog/internal/pdf"
	"suilog/internal/repositories"
	"suilog/internal/sui"
	"suilog/internal/wallet"
)

var (
	ErrProjectCompleted    = errors.New("project already completed")
	ErrMemberExists        = errors.New("member already added")
	ErrConfirmationMissing = errors.New("confirmation code required")
	ErrNoCertificate       = errors.New("certificate not generated")
)

// Minter submits the completion-proof transaction.
type Minter interface {
	MintCompletionProof(ctx context.Context, p sui.MintParams) (string, error)
}

// ProjectService owns the single project record and its one-way
// active -> completed transition.
type ProjectService struct {
	projects      repositories.ProjectRepository
	tasks         repositories.TaskRepository
	minter        Minter
	certificates  pdf.Generator
	email         EmailService
	tg            *TelegramService
	confirmations *ConfirmationService

	// RequireConfirmation gates Complete behind an emailed code.
	RequireConfirmation bool

	certificatePath string
}

func NewProjectService(
	projects repositories.ProjectRepository,
	tasks repositories.TaskRepository,
	minter Minter,
	certificates pdf.Generator,
	email EmailService,
	tg *TelegramService,
	confirmations *ConfirmationService,
	requireConfirmation bool,
) *ProjectService {
	return &ProjectService{
		projects:            projects,
		tasks:               tasks,
		minter:              minter,
		certificates:        certificates,
		email:               email,
		tg:                  tg,
		confirmations:       confirmations,
		RequireConfirmation: requireConfirmation,
	}
}

// Get returns the project, default-filled on first access.
func (s *ProjectService) Get(ctx context.Context) (*models.Project, error) {
	project, err := s.projects.Get(ctx, models.DefaultProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			project = models.DefaultProject(time.Now())
			if err := s.projects.Save(ctx, project); err != nil {
				return nil, err
			}
			return project, nil
		}
		return nil, err
	}
	return project, nil
}

// Update edits the project's name and description.
func (s *ProjectService) Update(ctx context.Context, name, description string) (*models.Project, error) {
	project, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if project.Status == models.ProjectCompleted {
		return nil, ErrProjectCompleted
	}
	if name != "" {
		project.Name = name
	}
	project.Description = description
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// AddMember appends a wallet address to the member list. Uniqueness is
// enforced on the normalized form.
func (s *ProjectService) AddMember(ctx context.Context, address string) (*models.Project, error) {
	normalized := wallet.Normalize(address)
	if !wallet.IsValidAddress(normalized) {
		return nil, fmt.Errorf("%w: invalid member address", ErrInvalidInput)
	}

	project, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range project.Members {
		if wallet.Equal(m, normalized) {
			return nil, ErrMemberExists
		}
	}
	project.Members = append(project.Members, normalized)
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// RemoveMember drops a wallet address from the member list.
func (s *ProjectService) RemoveMember(ctx context.Context, address string) (*models.Project, error) {
	project, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	members := project.Members[:0:0]
	for _, m := range project.Members {
		if !wallet.Equal(m, address) {
			members = append(members, m)
		}
	}
	if len(members) == len(project.Members) {
		return nil, fmt.Errorf("%w: member not found", ErrInvalidInput)
	}
	project.Members = members
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// RequestCompletionCode emails a confirmation code ahead of Complete.
func (s *ProjectService) RequestCompletionCode(ctx context.Context, email string) error {
	project, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if project.Status == models.ProjectCompleted {
		return ErrProjectCompleted
	}
	return s.confirmations.RequestCode(ctx, project.ID, project.Name, email)
}

// CompleteRequest carries the inputs of the complete-project action.
type CompleteRequest struct {
	Recipient string // wallet address receiving the completion proof
	Email     string // optional; receives the certificate
	Code      string // confirmation code, when required
}

// Complete closes the project: it computes the contribution summary, mints
// the completion proof, and persists the completed state only after the
// mint succeeded; a failed mint leaves the project untouched. Certificate
// and notifications are best-effort afterwards.
func (s *ProjectService) Complete(ctx context.Context, req CompleteRequest) (*models.Project, error) {
	project, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if project.Status == models.ProjectCompleted {
		return nil, ErrProjectCompleted
	}
	if !wallet.IsValidAddress(req.Recipient) {
		return nil, fmt.Errorf("%w: invalid recipient address", ErrInvalidInput)
	}

	if s.RequireConfirmation {
		if req.Code == "" {
			return nil, ErrConfirmationMissing
		}
		if err := s.confirmations.Confirm(ctx, project.ID, req.Code); err != nil {
			return nil, err
		}
	}

	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	summary := contribution.Calculate(tasks)

	completedAt := time.Now()
	digest, err := s.minter.MintCompletionProof(ctx, sui.MintParams{
		Recipient:          wallet.Normalize(req.Recipient),
		ProjectName:        project.Name,
		CompletedTasks:     summary.CompletedTasks,
		TotalEstimatedTime: summary.TotalEstimatedTime,
		TotalActualTime:    summary.TotalActualTime,
		CompletedAt:        completedAt,
		ContributionScore:  summary.ContributionScore,
	})
	if err != nil {
		return nil, fmt.Errorf("mint completion proof: %w", err)
	}

	project.Status = models.ProjectCompleted
	project.CompletedAt = &completedAt
	project.NFTMinted = true
	project.NFTObjectID = digest
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	log.Printf("[project][complete] id=%s digest=%s score=%.1f", project.ID, digest, summary.ContributionScore)

	s.issueCertificate(project, summary, req, digest, completedAt)
	s.tg.NotifyProjectCompleted(project.Name, digest, summary)
	return project, nil
}

// issueCertificate renders the PDF and emails it; failures here are logged,
// never surfaced, since the project is already completed.
func (s *ProjectService) issueCertificate(project *models.Project, summary contribution.Summary, req CompleteRequest, digest string, completedAt time.Time) {
	if s.certificates == nil {
		return
	}
	path, err := s.certificates.GenerateCertificate(pdf.CertificateData{
		ProjectName: project.Name,
		Recipient:   wallet.Normalize(req.Recipient),
		TxDigest:    digest,
		CompletedAt: completedAt,
		Summary:     summary,
	})
	if err != nil {
		log.Printf("[project][certificate][err] %v", err)
		return
	}
	s.certificatePath = path

	if req.Email != "" && s.email != nil {
		if err := s.email.SendCompletionCertificate(req.Email, project.Name, path, summary); err != nil {
			log.Printf("[project][certificate][email][err] %v", err)
		}
	}
}

// CertificatePath returns the rendered certificate's location, regenerating
// it for an already-completed project after a restart.
func (s *ProjectService) CertificatePath(ctx context.Context) (string, error) {
	if s.certificatePath != "" {
		return s.certificatePath, nil
	}
	if s.certificates == nil {
		return "", ErrNoCertificate
	}

	project, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	if project.Status != models.ProjectCompleted || project.CompletedAt == nil {
		return "", ErrNoCertificate
	}

	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return "", err
	}
	path, err := s.certificates.GenerateCertificate(pdf.CertificateData{
		ProjectName: project.Name,
		TxDigest:    project.NFTObjectID,
		CompletedAt: *project.CompletedAt,
		Summary:     contribution.Calculate(tasks),
	})
	if err != nil {
		return "", err
	}
	s.certificatePath = path
	return path, nil
}
