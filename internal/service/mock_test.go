package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/repository"
)

type mockNotificationRepository struct {
	CreateFunc         func(ctx context.Context, n *domain.Notification) error
	CreateBatchFunc    func(ctx context.Context, ns []domain.Notification) error
	GetByUserFunc      func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, int64, error)
	GetUnreadCountFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsReadFunc     func(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsReadFunc  func(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteFunc         func(ctx context.Context, id, userID uuid.UUID) error
	CleanupOldFunc     func(ctx context.Context, olderThan time.Time) (int64, error)
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return m.CreateFunc(ctx, n)
}
func (m *mockNotificationRepository) CreateBatch(ctx context.Context, ns []domain.Notification) error {
	return m.CreateBatchFunc(ctx, ns)
}
func (m *mockNotificationRepository) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, int64, error) {
	return m.GetByUserFunc(ctx, userID, limit, offset)
}
func (m *mockNotificationRepository) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.GetUnreadCountFunc(ctx, userID)
}
func (m *mockNotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.MarkAsReadFunc(ctx, id, userID)
}
func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.MarkAllAsReadFunc(ctx, userID)
}
func (m *mockNotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.DeleteFunc(ctx, id, userID)
}
func (m *mockNotificationRepository) CleanupOld(ctx context.Context, olderThan time.Time) (int64, error) {
	return m.CleanupOldFunc(ctx, olderThan)
}

type mockTaskRepository struct {
	CreateFunc  func(ctx context.Context, task *domain.Task) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetAllFunc  func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error)
	UpdateFunc  func(ctx context.Context, task *domain.Task) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return m.CreateFunc(ctx, task)
}
func (m *mockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTaskRepository) GetAll(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return m.GetAllFunc(ctx, filter)
}
func (m *mockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return m.UpdateFunc(ctx, task)
}
func (m *mockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockUserRepository struct {
	CreateFunc          func(ctx context.Context, user *domain.User) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDsFunc        func(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	GetAllFunc          func(ctx context.Context) ([]domain.User, error)
	UpdateFunc          func(ctx context.Context, user *domain.User) error
	TouchLastActiveFunc func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}
func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	return m.GetByIDsFunc(ctx, ids)
}
func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return m.GetAllFunc(ctx)
}
func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFunc(ctx, user)
}
func (m *mockUserRepository) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.TouchLastActiveFunc(ctx, id, at)
}

type mockProjectRepository struct {
	CreateFunc       func(ctx context.Context, project *domain.Project) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetAllFunc       func(ctx context.Context, status *domain.ProjectStatus) ([]domain.Project, error)
	GetByMemberFunc  func(ctx context.Context, userID uuid.UUID) ([]domain.Project, error)
	UpdateFunc       func(ctx context.Context, project *domain.Project) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	GetMembersFunc   func(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMember, error)
	GetMemberFunc    func(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectMember, error)
	AddMemberFunc    func(ctx context.Context, member *domain.ProjectMember) error
	RemoveMemberFunc func(ctx context.Context, projectID, userID uuid.UUID) error
}

func (m *mockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return m.CreateFunc(ctx, project)
}
func (m *mockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockProjectRepository) GetAll(ctx context.Context, status *domain.ProjectStatus) ([]domain.Project, error) {
	return m.GetAllFunc(ctx, status)
}
func (m *mockProjectRepository) GetByMember(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	return m.GetByMemberFunc(ctx, userID)
}
func (m *mockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return m.UpdateFunc(ctx, project)
}
func (m *mockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockProjectRepository) GetMembers(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMember, error) {
	return m.GetMembersFunc(ctx, projectID)
}
func (m *mockProjectRepository) GetMember(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectMember, error) {
	return m.GetMemberFunc(ctx, projectID, userID)
}
func (m *mockProjectRepository) AddMember(ctx context.Context, member *domain.ProjectMember) error {
	return m.AddMemberFunc(ctx, member)
}
func (m *mockProjectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return m.RemoveMemberFunc(ctx, projectID, userID)
}

type mockCommentRepository struct {
	CreateFunc    func(ctx context.Context, comment *domain.Comment) error
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	GetByTaskFunc func(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error)
	UpdateFunc    func(ctx context.Context, comment *domain.Comment) error
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return m.CreateFunc(ctx, comment)
}
func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockCommentRepository) GetByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Comment, error) {
	return m.GetByTaskFunc(ctx, taskID)
}
func (m *mockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return m.UpdateFunc(ctx, comment)
}
func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockS3Client struct {
	GenerateFileKeyFunc      func(projectID uuid.UUID, fileName string) string
	GenerateAvatarKeyFunc    func(userID uuid.UUID, fileName string) string
	GeneratePresignedURLFunc func(ctx context.Context, fileKey string) (string, error)
	UploadFileFunc           func(ctx context.Context, fileKey string, body io.Reader, contentType string) error
	DeleteFileFunc           func(ctx context.Context, fileKey string) error
	GetFileURLFunc           func(fileKey string) string
	BucketNameFunc           func() string
}

func (m *mockS3Client) GenerateFileKey(projectID uuid.UUID, fileName string) string {
	return m.GenerateFileKeyFunc(projectID, fileName)
}
func (m *mockS3Client) GenerateAvatarKey(userID uuid.UUID, fileName string) string {
	return m.GenerateAvatarKeyFunc(userID, fileName)
}
func (m *mockS3Client) GeneratePresignedURL(ctx context.Context, fileKey string) (string, error) {
	return m.GeneratePresignedURLFunc(ctx, fileKey)
}
func (m *mockS3Client) UploadFile(ctx context.Context, fileKey string, body io.Reader, contentType string) error {
	return m.UploadFileFunc(ctx, fileKey, body, contentType)
}
func (m *mockS3Client) DeleteFile(ctx context.Context, fileKey string) error {
	return m.DeleteFileFunc(ctx, fileKey)
}
func (m *mockS3Client) GetFileURL(fileKey string) string {
	return m.GetFileURLFunc(fileKey)
}
func (m *mockS3Client) BucketName() string {
	if m.BucketNameFunc == nil {
		return "test-bucket"
	}
	return m.BucketNameFunc()
}

type mockFileRepository struct {
	CreateFunc       func(ctx context.Context, file *domain.File) error
	CreateBatchFunc  func(ctx context.Context, files []domain.File) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.File, error)
	GetByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]domain.File, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockFileRepository) Create(ctx context.Context, file *domain.File) error {
	return m.CreateFunc(ctx, file)
}
func (m *mockFileRepository) CreateBatch(ctx context.Context, files []domain.File) error {
	return m.CreateBatchFunc(ctx, files)
}
func (m *mockFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockFileRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]domain.File, error) {
	return m.GetByProjectFunc(ctx, projectID)
}
func (m *mockFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockActivityRepository struct {
	CreateFunc       func(ctx context.Context, activity *domain.Activity) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	GetByProjectFunc func(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.Activity, error)
	GetByUserFunc    func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error)
	GetRecentFunc    func(ctx context.Context, limit int) ([]domain.Activity, error)
}

func (m *mockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return m.CreateFunc(ctx, activity)
}
func (m *mockActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockActivityRepository) GetByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.Activity, error) {
	return m.GetByProjectFunc(ctx, projectID, limit)
}
func (m *mockActivityRepository) GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Activity, error) {
	return m.GetByUserFunc(ctx, userID, limit)
}
func (m *mockActivityRepository) GetRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	return m.GetRecentFunc(ctx, limit)
}

type mockEmailClient struct {
	sent []string
}

func (m *mockEmailClient) SendNotificationEmail(ctx context.Context, to, subject, body string) error {
	m.sent = append(m.sent, to)
	return nil
}

type mockInvalidator struct {
	invalidated []uuid.UUID
}

func (m *mockInvalidator) InvalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	m.invalidated = append(m.invalidated, userID)
}

// userContext builds a context carrying an authenticated user id the
// way the auth middleware would
func userContext(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), userIDKey, userID)
}
