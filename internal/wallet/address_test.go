package wallet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"suilog/internal/wallet"
)

const addr = "0x7a1b2c3d4e5f60718293a4b5c6d7e8f901234567"

func TestNormalize(t *testing.T) {
	require.Equal(t, addr, wallet.Normalize("  "+strings.ToUpper(addr)+"  "))
	require.Equal(t, "", wallet.Normalize(""))
	require.Equal(t, "", wallet.Normalize("   "))
}

func TestEqualIgnoresCaseAndWhitespace(t *testing.T) {
	require.True(t, wallet.Equal(addr, strings.ToUpper(addr)))
	require.True(t, wallet.Equal(" "+addr, addr+"\t"))
	require.True(t, wallet.Equal("", ""))
	require.False(t, wallet.Equal(addr, ""))
	require.False(t, wallet.Equal(addr, "0x7a1b2c3d4e5f60718293a4b5c6d7e8f901234568"))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "0x7a1b...4567", wallet.Truncate(addr))
	// Case is normalized before slicing.
	require.Equal(t, "0x7a1b...4567", wallet.Truncate(strings.ToUpper(addr)))
	// Short strings come back unchanged.
	require.Equal(t, "0x1234", wallet.Truncate("0x1234"))
	require.Equal(t, "", wallet.Truncate(""))
}

func TestIsValidAddress(t *testing.T) {
	require.True(t, wallet.IsValidAddress(addr))
	require.True(t, wallet.IsValidAddress("  "+addr+"  "))
	// 64 hex chars is the upper bound.
	require.True(t, wallet.IsValidAddress("0x"+strings.Repeat("a", 64)))
	require.False(t, wallet.IsValidAddress("0x"+strings.Repeat("a", 65)))
	require.False(t, wallet.IsValidAddress("0x"+strings.Repeat("a", 39)))
	require.False(t, wallet.IsValidAddress(strings.Repeat("a", 42)))
	require.False(t, wallet.IsValidAddress("0x"+strings.Repeat("g", 40)))
	require.False(t, wallet.IsValidAddress(""))
}
