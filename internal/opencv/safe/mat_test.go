package safe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestNewMatValidatesDimensions(t *testing.T) {
	_, err := NewMat(0, 10, gocv.MatTypeCV32FC1, "zero")
	assert.Error(t, err)

	_, err = NewMat(10, MaxDimension+1, gocv.MatTypeCV32FC1, "huge")
	assert.Error(t, err)
}

func TestMatLifecycle(t *testing.T) {
	mat, err := NewMat(3, 4, gocv.MatTypeCV32FC1, "test")
	require.NoError(t, err)

	assert.Equal(t, 3, mat.Rows())
	assert.Equal(t, 4, mat.Cols())
	require.NoError(t, ValidateMatType(mat, gocv.MatTypeCV32FC1, "test"))
	assert.Error(t, ValidateMatType(mat, gocv.MatTypeCV8UC3, "test"))

	data, err := mat.Float32Data()
	require.NoError(t, err)
	assert.Len(t, data, 12)

	other, err := NewMat(3, 4, gocv.MatTypeCV8UC3, "other")
	require.NoError(t, err)
	defer other.Close()
	require.NoError(t, ValidateSameSize(mat, other, "test"))

	wider, err := NewMat(3, 5, gocv.MatTypeCV32FC1, "wider")
	require.NoError(t, err)
	defer wider.Close()
	assert.Error(t, ValidateSameSize(mat, wider, "test"))

	mat.Close()
	assert.False(t, mat.IsValid())
	assert.True(t, mat.Empty())
	assert.Zero(t, mat.Rows())

	mat.Close()
	assert.Error(t, ValidateMatForOperation(mat, "closed"))
	assert.Error(t, ValidateMatForOperation(nil, "nil"))

	_, err = mat.Float32Data()
	assert.Error(t, err)
}

func TestFloat32DataRejectsWrongType(t *testing.T) {
	mat, err := NewMat(2, 2, gocv.MatTypeCV8UC3, "bytes")
	require.NoError(t, err)
	defer mat.Close()

	_, err = mat.Float32Data()
	assert.Error(t, err)

	data, err := mat.Uint8Data()
	require.NoError(t, err)
	assert.Len(t, data, 12)
}
