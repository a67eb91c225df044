package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_DevEnvironment_InfoLevel(t *testing.T) {
	log := New("gateway-test", "dev")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNew_ProdEnvironment_WarnLevel(t *testing.T) {
	log := New("gateway-test", "prod")
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}
