package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogging_Level(t *testing.T) {
	logger := SetupLogging("debug")
	assert.Equal(t, logrus.DebugLevel, logger.Level)
}

func TestSetupLogging_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := SetupLogging("chatty")
	assert.Equal(t, logrus.InfoLevel, logger.Level)
}

func TestGetLogData_Missing(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))
}

func TestGetLogData_RoundTrip(t *testing.T) {
	logData := NewLogData(SetupLogging("info"))
	ctx := WithLogData(context.Background(), logData)
	assert.Same(t, logData, GetLogData(ctx))
}

func TestLogData_NilIsSafe(t *testing.T) {
	var logData *LogData
	stop := logData.AddTiming("x")
	stop()
	logData.AddData("k", "v")
}

func TestLogData_Fields(t *testing.T) {
	var out bytes.Buffer
	logger := SetupLogging("info")
	logger.Out = &out

	logData := NewLogData(logger)
	logData.AddData("itemID", "abc")
	logData.AddTiming("purchaseMs")()
	logData.Log().Info("done")

	var line map[string]interface{}
	assert.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "abc", line["itemID"])
	assert.Equal(t, "info", line["loglevel"])
	assert.Contains(t, line, "purchaseMs")
}
