package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokenledger/tokend/pkg/errors"
	grpccodes "google.golang.org/grpc/codes"
)

func TestErrorCodes(t *testing.T) {
	err := errors.ASSET_UNKNOWN.New("asset %d does not exist", 42).
		WithMetadata(errors.AssetMetadata{AssetId: 42})

	require.EqualError(t, err, "ASSET_UNKNOWN (1): asset 42 does not exist")
	require.Equal(t, uint16(1), err.Code())
	require.Equal(t, "ASSET_UNKNOWN", err.CodeName())
	require.Equal(t, grpccodes.NotFound, err.GrpcCode())
	require.Equal(t, map[string]string{"asset_id": "42"}, err.Metadata())
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := errors.INTERNAL_ERROR.Wrap(cause)
	require.EqualError(t, err, "INTERNAL_ERROR (0): boom")
}

func TestIs(t *testing.T) {
	err := errors.NO_PERMISSION.New("caller is not the owner")

	require.True(t, errors.NO_PERMISSION.Is(err))
	require.False(t, errors.NOT_OWNED.Is(err))
	require.False(t, errors.NO_PERMISSION.Is(fmt.Errorf("plain error")))
}
