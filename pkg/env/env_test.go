package env

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type EnvTestSuite struct {
	suite.Suite
}

func (s *EnvTestSuite) SetupTest() {
	os.Unsetenv("ALMANAC_PORT")
	os.Unsetenv("ALMANAC_LOG_LEVEL")
	os.Unsetenv("ALMANAC_CACHE_TTL")
}

func (s *EnvTestSuite) TestProcess() {
	assert.Nil(s.T(), Process())
	assert.NotNil(s.T(), Variables())
	assert.Equal(s.T(), "info", Variables().LogLevel)
	assert.Equal(s.T(), 8080, Variables().Port)
	assert.Equal(s.T(), 30*time.Second, Variables().CacheTTL)
}

func (s *EnvTestSuite) TestProcessOverride() {
	os.Setenv("ALMANAC_CACHE_TTL", "5s")
	assert.Nil(s.T(), Process())
	assert.Equal(s.T(), 5*time.Second, Variables().CacheTTL)
}

func (s *EnvTestSuite) TestProcessInvalidTypeFailure() {
	os.Setenv("ALMANAC_PORT", "not_a_port")
	assert.NotNil(s.T(), Process())
}

func (s *EnvTestSuite) TestProcessInvalidLogLevelFailure() {
	os.Setenv("ALMANAC_LOG_LEVEL", "bogus")
	assert.NotNil(s.T(), Process())
}

func TestEnvTestSuite(t *testing.T) {
	suite.Run(t, new(EnvTestSuite))
}
