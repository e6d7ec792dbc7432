package services

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = apierrors.WithKind(apierrors.ErrKindUnauthorized, "invalid username or password")
	ErrAccountInactive    = apierrors.WithKind(apierrors.ErrKindForbidden, "account is inactive")
	ErrUserNotFound       = apierrors.WithKind(apierrors.ErrKindNotFound, "user not found")
	ErrUsernameTaken      = apierrors.WithKind(apierrors.ErrKindConflict, "username already exists")
	ErrSelfDeactivation   = apierrors.WithKind(apierrors.ErrKindInvalidInput, "you cannot change the active state of your own account")

	ErrParentFolderNotFound = apierrors.WithKind(apierrors.ErrKindInvalidInput, "parent folder does not exist")

	ErrDocumentNotFound   = apierrors.WithKind(apierrors.ErrKindNotFound, "document not found")
	ErrDocumentNotDeleted = apierrors.WithKind(apierrors.ErrKindNotFound, "document not found in trash")
	ErrNoFilePath         = apierrors.WithKind(apierrors.ErrKindInvalidInput, "document has no file path")
	ErrPathOutsideRoot    = apierrors.WithKind(apierrors.ErrKindInvalidInput, "invalid file path")
	ErrFileNotFound       = apierrors.WithKind(apierrors.ErrKindNotFound, "file not found")

	ErrTaxonomyEmptyUpdate = apierrors.WithKind(apierrors.ErrKindInvalidInput, "name or is_active is required")
)

// validationError converts ozzo validation output into an invalid input
// error carrying per-field details.
func validationError(err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return apierrors.InvalidInputWithDetails("validation failed", errs)
	}
	return apierrors.WithKind(apierrors.ErrKindInvalidInput, err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
