package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/document-management-api/internal/auth"
	"github.com/yukikurage/document-management-api/internal/database"
	"github.com/yukikurage/document-management-api/internal/logging"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/repository"
	"github.com/yukikurage/document-management-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db        *gorm.DB
	tokens    *auth.TokenManager
	files     *storage.FileStore
	users     *UserService
	auth      *AuthService
	folders   *FolderService
	documents *DocumentService
	docTypes  *TaxonomyService
	jobTypes  *TaxonomyService
	dashboard *DashboardService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))

	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	log := logging.Discard()

	userRepo := repository.NewUserRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	docTypeRepo := repository.NewTaxonomyRepository(db, models.TaxonomyDocumentType)
	jobTypeRepo := repository.NewTaxonomyRepository(db, models.TaxonomyItJobType)
	activityRepo := repository.NewActivityRepository(db)

	return serviceTestEnv{
		db:        db,
		tokens:    tokens,
		files:     files,
		users:     NewUserService(userRepo),
		auth:      NewAuthService(userRepo, tokens),
		folders:   NewFolderService(folderRepo),
		documents: NewDocumentService(docRepo, folderRepo, docTypeRepo, jobTypeRepo, activityRepo, files, log),
		docTypes:  NewTaxonomyService(docTypeRepo),
		jobTypes:  NewTaxonomyService(jobTypeRepo),
		dashboard: NewDashboardService(repository.NewDashboardRepository(db, docRepo.HasTitle()), activityRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username, password, role string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env serviceTestEnv) createFolder(t *testing.T, name string, parentID *uint64, createdBy uint64) *models.Folder {
	t.Helper()
	folder := &models.Folder{Name: name, ParentID: parentID, CreatedBy: createdBy}
	require.NoError(t, env.db.Create(folder).Error)
	return folder
}

func (env serviceTestEnv) createDocument(t *testing.T, name string, folderID *uint64, createdBy uint64) *models.Document {
	t.Helper()
	doc, err := env.documents.Create(CreateDocumentInput{
		OriginalFileName: name,
		StoredFileName:   "stored-" + name,
		FilePath:         "docs/" + name,
		FileSize:         10,
		MimeType:         "text/plain",
		FolderID:         folderID,
		CreatedBy:        createdBy,
	})
	require.NoError(t, err)
	return doc
}
