package store

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/flowadmin/internal/errs"
)

// mapErr converts Firestore gRPC status codes into domain errors.
func mapErr(err error, operation, notFound string) error {
	switch status.Code(err) {
	case codes.OK:
		return nil
	case codes.NotFound:
		return errs.NewNotFoundError(notFound)
	case codes.AlreadyExists:
		return errs.NewAlreadyExistsError("document already exists")
	default:
		return errs.NewDatabaseError(operation, "firestore "+operation+" failed", err)
	}
}
