package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "vet", Password: "secret", Name: "vetflow", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5433 user=vet password=secret dbname=vetflow sslmode=disable", dsn)
}
