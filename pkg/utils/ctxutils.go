package utils

import (
	"context"

	"lending-system/pkg/contextkeys"
	apperrors "lending-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	val := ctx.Value(contextkeys.UserIDKey)
	userID, ok := val.(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetRoleIDFromCtx(ctx context.Context) (uint64, error) {
	val := ctx.Value(contextkeys.RoleIDKey)
	roleID, ok := val.(uint64)
	if !ok || roleID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return roleID, nil
}

func GetPermissionsMapFromCtx(ctx context.Context) (map[string]bool, error) {
	val := ctx.Value(contextkeys.PermissionsMapKey)
	perms, ok := val.(map[string]bool)
	if !ok {
		return nil, apperrors.ErrForbidden
	}
	return perms, nil
}
