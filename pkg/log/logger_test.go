package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
	buf bytes.Buffer
}

func (s *LoggerTestSuite) SetupTest() {
	s.buf.Reset()
	s.Require().NoError(SetLevel("info"))
	SetOutput(&s.buf)
}

func (s *LoggerTestSuite) TestEventsCarryGoroutineID() {
	Info().Str("op", "ping").Msg("hello")

	var event map[string]interface{}
	s.Require().NoError(json.Unmarshal(s.buf.Bytes(), &event))
	s.Equal("hello", event["message"])
	s.Equal("ping", event["op"])
	s.NotEmpty(event["goid"])
	s.NotEqual("unknown", event["goid"])
}

func (s *LoggerTestSuite) TestSetLevel() {
	Debug().Msg("hidden")
	s.Empty(s.buf.String())
	s.False(IsDebug())

	s.Require().NoError(SetLevel("DEBUG"))
	s.True(IsDebug())
	Debug().Msg("shown")
	s.Contains(s.buf.String(), "shown")
}

func (s *LoggerTestSuite) TestSetLevelKeepsLevelAcrossOutputs() {
	s.Require().NoError(SetLevel("error"))
	SetOutput(&s.buf)
	Warn().Msg("dropped")
	s.Empty(s.buf.String())
}

func (s *LoggerTestSuite) TestSetLevelRejectsUnknown() {
	s.Error(SetLevel("chatty"))
	s.NoError(SetLevel(""))
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
