package utils_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/NethermindEth/flatconv/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var levelStrings = map[*utils.LogLevel]string{
	utils.NewLogLevel(utils.DEBUG): "debug",
	utils.NewLogLevel(utils.INFO):  "info",
	utils.NewLogLevel(utils.WARN):  "warn",
	utils.NewLogLevel(utils.ERROR): "error",
}

func TestLogLevelString(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			assert.Equal(t, str, level.String())
		})
	}
}

func TestLogLevelSet(t *testing.T) {
	for level, str := range levelStrings {
		for _, s := range []string{str, strings.ToUpper(str)} {
			t.Run("level "+s, func(t *testing.T) {
				l := utils.NewLogLevel(utils.ERROR)
				require.NoError(t, l.Set(s))
				assert.Equal(t, *level, *l)

				l = utils.NewLogLevel(utils.ERROR)
				require.NoError(t, l.UnmarshalText([]byte(s)))
				assert.Equal(t, *level, *l)
			})
		}
	}

	t.Run("unknown log level", func(t *testing.T) {
		l := new(utils.LogLevel)
		require.ErrorIs(t, l.Set("blah"), utils.ErrUnknownLogLevel)
		require.ErrorIs(t, l.UnmarshalText([]byte("trace")), utils.ErrUnknownLogLevel)
	})
}

func TestLogLevelMarshal(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("json "+str, func(t *testing.T) {
			lb, err := json.Marshal(level)
			require.NoError(t, err)
			assert.Equal(t, `"`+str+`"`, string(lb))
		})
		t.Run("yaml "+str, func(t *testing.T) {
			lb, err := yaml.Marshal(*level)
			require.NoError(t, err)
			assert.Equal(t, str+"\n", string(lb))
		})
	}
}

func TestLogLevelType(t *testing.T) {
	assert.Equal(t, "LogLevel", new(utils.LogLevel).Type())
}

func TestZapLogger(t *testing.T) {
	for level, str := range levelStrings {
		for _, colour := range []bool{true, false} {
			t.Run("level: "+str, func(t *testing.T) {
				log, err := utils.NewZapLogger(*level, colour)
				require.NoError(t, err)
				log.Debugw("message", "key", "value")
			})
		}
	}
}
