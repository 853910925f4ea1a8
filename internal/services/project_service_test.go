package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"suilog/internal/models"
)

func completedTask(due time.Time) models.Task {
	actual := 60
	completedAt := due
	return models.Task{
		ID:            "done",
		Title:         "Done task",
		Priority:      models.PriorityUrgent,
		EstimatedTime: 60,
		ActualTime:    &actual,
		ScheduledDate: due,
		StartDate:     due,
		DueDate:       due,
		Status:        models.StatusCompleted,
		CompletedAt:   &completedAt,
	}
}

func newProjectService(tasks *fakeTaskRepo, minter *fakeMinter) (*ProjectService, *fakeProjectRepo, *fakeCertGen, *fakeEmail) {
	projects := &fakeProjectRepo{}
	certs := &fakeCertGen{}
	email := &fakeEmail{}
	svc := NewProjectService(projects, tasks, minter, certs, email, nil, nil, false)
	return svc, projects, certs, email
}

func TestProjectServiceGetDefaultFills(t *testing.T) {
	ctx := context.Background()
	svc, projects, _, _ := newProjectService(newFakeTaskRepo(), &fakeMinter{})

	project, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, models.DefaultProjectID, project.ID)
	require.Equal(t, "My Project", project.Name)
	require.Equal(t, models.ProjectActive, project.Status)
	require.Equal(t, 1, projects.saves)

	// Second call reads the stored row, no second default-fill.
	_, err = svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, projects.saves)
}

func TestProjectServiceMembers(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newProjectService(newFakeTaskRepo(), &fakeMinter{})

	project, err := svc.AddMember(ctx, "  0x7A1B2C3D4E5F60718293A4B5C6D7E8F901234567 ")
	require.NoError(t, err)
	require.Equal(t, []string{testAddr}, project.Members)

	// Duplicate under different casing is rejected.
	_, err = svc.AddMember(ctx, testAddr)
	require.ErrorIs(t, err, ErrMemberExists)

	_, err = svc.AddMember(ctx, "bogus")
	require.ErrorIs(t, err, ErrInvalidInput)

	project, err = svc.RemoveMember(ctx, testAddr)
	require.NoError(t, err)
	require.Empty(t, project.Members)

	_, err = svc.RemoveMember(ctx, testAddr)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectServiceComplete(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTaskRepo()
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	require.NoError(t, tasks.StoreBatch(ctx, []models.Task{completedTask(due)}))

	minter := &fakeMinter{digest: "0xdigest"}
	svc, projects, certs, _ := newProjectService(tasks, minter)

	project, err := svc.Complete(ctx, CompleteRequest{Recipient: testAddr})
	require.NoError(t, err)
	require.Equal(t, models.ProjectCompleted, project.Status)
	require.NotNil(t, project.CompletedAt)
	require.True(t, project.NFTMinted)
	require.Equal(t, "0xdigest", project.NFTObjectID)

	// The mint payload is the contribution summary.
	require.Len(t, minter.calls, 1)
	call := minter.calls[0]
	require.Equal(t, testAddr, call.Recipient)
	require.Equal(t, 1, call.CompletedTasks)
	require.Equal(t, 60, call.TotalEstimatedTime)
	require.Equal(t, 60, call.TotalActualTime)
	require.Equal(t, 5.0, call.ContributionScore)

	// Certificate rendered after a successful mint.
	require.Len(t, certs.calls, 1)
	require.Equal(t, "0xdigest", certs.calls[0].TxDigest)

	path, err := svc.CertificatePath(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	// Completing twice is rejected.
	_, err = svc.Complete(ctx, CompleteRequest{Recipient: testAddr})
	require.ErrorIs(t, err, ErrProjectCompleted)
	require.NotNil(t, projects.project.CompletedAt)
}

func TestProjectServiceCompleteMintFailureLeavesProjectActive(t *testing.T) {
	ctx := context.Background()
	minter := &fakeMinter{err: errors.New("rpc unreachable")}
	svc, projects, certs, _ := newProjectService(newFakeTaskRepo(), minter)

	_, err := svc.Complete(ctx, CompleteRequest{Recipient: testAddr})
	require.Error(t, err)

	project, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, models.ProjectActive, project.Status)
	require.Nil(t, project.CompletedAt)
	require.False(t, project.NFTMinted)
	require.Empty(t, certs.calls)
	_ = projects
}

func TestProjectServiceCompleteRejectsBadRecipient(t *testing.T) {
	ctx := context.Background()
	minter := &fakeMinter{}
	svc, _, _, _ := newProjectService(newFakeTaskRepo(), minter)

	_, err := svc.Complete(ctx, CompleteRequest{Recipient: "nope"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, minter.calls)
}

func TestProjectServiceCompleteWithConfirmation(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTaskRepo()
	minter := &fakeMinter{}
	projects := &fakeProjectRepo{}
	email := &fakeEmail{}
	confirmations := NewConfirmationService(&fakeConfirmationRepo{}, email)
	svc := NewProjectService(projects, tasks, minter, &fakeCertGen{}, email, nil, confirmations, true)

	// No code at all.
	_, err := svc.Complete(ctx, CompleteRequest{Recipient: testAddr})
	require.ErrorIs(t, err, ErrConfirmationMissing)

	require.NoError(t, svc.RequestCompletionCode(ctx, "owner@example.com"))
	require.Len(t, email.codes, 1)

	// Wrong code is rejected, right code completes.
	_, err = svc.Complete(ctx, CompleteRequest{Recipient: testAddr, Code: "000000x"})
	require.ErrorIs(t, err, ErrCodeInvalid)

	project, err := svc.Complete(ctx, CompleteRequest{Recipient: testAddr, Code: email.codes[0]})
	require.NoError(t, err)
	require.Equal(t, models.ProjectCompleted, project.Status)
}
