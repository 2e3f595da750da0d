package services

import "errors"

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrCookieServiceNotFound = errors.New("cookie service not found")
	ErrCategoryExists        = errors.New("category already exists for project")
	ErrCategoriesExist       = errors.New("project already has categories")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)
