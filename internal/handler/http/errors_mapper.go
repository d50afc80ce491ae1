package http

import (
	"errors"
	"net/http"

	"github.com/stocktree/stocktree-auth/internal/service"
	"github.com/stocktree/stocktree-auth/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUserNotFound:            http.StatusNotFound,
	service.ErrUserAlreadyExists:       http.StatusConflict,
	service.ErrUserNotActive:           http.StatusForbidden,
	service.ErrUserAlreadyActive:       http.StatusConflict,
	service.ErrOTPMismatch:             http.StatusUnprocessableEntity,
	service.ErrOTPExpiredOrInvalid:     http.StatusUnprocessableEntity,
	service.ErrSamePassword:            http.StatusUnprocessableEntity,

	store.ErrEmailAlreadyExists:     http.StatusConflict,
	store.ErrNoUserWasFound:         http.StatusNotFound,
	store.ErrNoRefreshTokenWasFound: http.StatusUnauthorized,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
