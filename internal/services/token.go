package services

import (
  "fmt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/twobeats/twobeats-backend/internal/logger"
)

// TokenService verifies access tokens minted by the account system and
// extracts the acting user. Issuing tokens is not this backend's job.
type TokenService interface {
  ParseUserID(tokenString string) (uuid.UUID, error)
}

type tokenService struct {
  log          *logger.Logger
  jwtSecretKey string
}

func NewTokenService(log *logger.Logger, jwtSecretKey string) TokenService {
  serviceLog := log.With("service", "TokenService")
  return &tokenService{log: serviceLog, jwtSecretKey: jwtSecretKey}
}

func (ts *tokenService) ParseUserID(tokenString string) (uuid.UUID, error) {
  claims := &jwt.RegisteredClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(ts.jwtSecretKey), nil
  })
  if err != nil {
    return uuid.Nil, fmt.Errorf("parse token: %w", err)
  }
  if !token.Valid {
    return uuid.Nil, fmt.Errorf("invalid token")
  }

  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return uuid.Nil, fmt.Errorf("token subject is not a user id: %w", err)
  }
  return userID, nil
}
