package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comms_governance/internal/infra/config"
)

func TestConfigureProductionWritesJSON(t *testing.T) {
	var out bytes.Buffer
	l := logrus.New()
	Configure(l, &config.AppConfig{LogLevel: "DEBUG", Environment: "production"}, &out)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	out.Reset()
	l.WithField("component", "http").Info("Request served")
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &line), out.String())
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "Request served", line["msg"])
}

func TestConfigureUnknownLevelFallsBackToInfo(t *testing.T) {
	var out bytes.Buffer
	l := logrus.New()
	Configure(l, &config.AppConfig{LogLevel: "loud", Environment: "development"}, &out)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	assert.Contains(t, out.String(), "Unknown log level")
	assert.Contains(t, out.String(), "log_level=loud")
}

func TestInitConfiguresGlobalLogger(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "warn", Environment: "staging"})
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
	assert.Equal(t, "digest", Component("digest").Data["component"])
}
