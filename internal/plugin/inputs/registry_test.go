package inputs

import (
	"testing"

	"github.com/sliink/logmerge/internal/model"
	"github.com/sliink/logmerge/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStandardPlugins(t *testing.T) {
	factory := plugin.NewPluginFactory()
	RegisterStandardPlugins(factory)

	assert.Equal(t, []string{LineParserName}, factory.Names(model.InputPluginType))

	input, err := factory.CreateInput(LineParserName, "line_parser")
	require.NoError(t, err)
	assert.IsType(t, &LineParser{}, input)
	assert.Equal(t, "line_parser", input.ID())
}
