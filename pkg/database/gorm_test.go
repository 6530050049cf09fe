package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGormDBFromDSNRejectsEmptyDSN(t *testing.T) {
	db, err := NewGormDBFromDSN("", false)
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "empty database DSN")
}
