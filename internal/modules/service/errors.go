package service

import "errors"

// Service layer errors for better error handling
var (
	ErrClientNotFound      = errors.New("cliente no encontrado")
	ErrCredentialsNotFound = errors.New("credenciales no encontradas")
	ErrUnsupportedPlatform = errors.New("plataforma no soportada")
)
