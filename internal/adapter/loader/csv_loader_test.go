package loader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/txrecon/internal/domain"
)

func TestCSVLoader_LoadCompanions(t *testing.T) {
	records, err := NewCSVLoader(filepath.Join("testdata", "records.csv")).LoadCompanions(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "138932", records[0].Reference)
	assert.Equal(t, "Flowers for Richard Bakker", records[0].Fields["Description"])
	assert.Equal(t, "-939", records[1].Fields["Mutation"])
}

func TestDecodeCompanions(t *testing.T) {
	t.Run("reference column in any position", func(t *testing.T) {
		records, err := DecodeCompanions(strings.NewReader("Description,Reference\nrent,T1\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "T1", records[0].Reference)
	})

	t.Run("byte order mark on header", func(t *testing.T) {
		records, err := DecodeCompanions(strings.NewReader("\ufeffReference,Mutation\nT1,5\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "T1", records[0].Reference)
	})

	t.Run("short row fills empty columns", func(t *testing.T) {
		records, err := DecodeCompanions(strings.NewReader("Reference,Mutation,End Balance\nT1\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "", records[0].Fields["End Balance"])
	})

	t.Run("quoted fields", func(t *testing.T) {
		records, err := DecodeCompanions(strings.NewReader("\"Reference\",\"Description\"\n\"T1\",\"Tickets, \"\"VIP\"\"\"\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, `Tickets, "VIP"`, records[0].Fields["Description"])
	})

	t.Run("reference trimmed, raw cell kept", func(t *testing.T) {
		records, err := DecodeCompanions(strings.NewReader("Reference,Mutation\n T1 ,5\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "T1", records[0].Reference)
		assert.Equal(t, " T1 ", records[0].Fields["Reference"])
	})

	t.Run("header only", func(t *testing.T) {
		records, err := DecodeCompanions(strings.NewReader("Reference\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestDecodeCompanions_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty file", ""},
		{"reference column spelled differently", "reference,Mutation\nT1,5\n"},
		{"reference column with trailing space", "Reference ,Mutation\nT1,5\n"},
		{"unterminated quote", "Reference\n\"T1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCompanions(strings.NewReader(tt.doc))
			if !errors.Is(err, domain.ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestCSVLoader_Unreadable(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCSVLoader(filepath.Join(dir, "missing.csv")).LoadCompanions(context.Background())
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO for missing file, got %v", err)
	}

	// A directory opens but cannot be read as a file.
	sub := filepath.Join(dir, "dir.csv")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err = NewCSVLoader(sub).LoadCompanions(context.Background())
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO reading a directory, got %v", err)
	}
	if errors.Is(err, domain.ErrFormat) {
		t.Fatalf("expected no ErrFormat reading a directory, got %v", err)
	}
}

func TestDecodeCompanions_ReadFailureIsIO(t *testing.T) {
	tests := []struct {
		name string
		r    io.Reader
	}{
		{"before header", iotest.ErrReader(errors.New("device error"))},
		{"mid file", io.MultiReader(strings.NewReader("Reference\nT1\n"), iotest.ErrReader(errors.New("device error")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCompanions(tt.r)
			if !errors.Is(err, domain.ErrIO) || errors.Is(err, domain.ErrFormat) {
				t.Fatalf("expected ErrIO only, got %v", err)
			}
		})
	}
}
