package admincli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name: ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	got, err := GetSimpleText(in, "Name", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Name", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	stubPasswords(t, "secret")

	var out bytes.Buffer
	got, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
	assert.Equal(t, "Admin password: \nRepeat password: \n", out.String())
}

func TestGetPassword_Empty(t *testing.T) {
	stubPasswords(t, "")

	_, err := GetPassword(&bytes.Buffer{})
	assert.ErrorContains(t, err, "empty")
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	_, err := GetPassword(&bytes.Buffer{})
	assert.EqualError(t, err, "boom")
}
