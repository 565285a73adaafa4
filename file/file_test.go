/*
File    : golox/file/file_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScriptReadsFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print "hi";`), 0o644))

	src, err := LoadScript(path)
	assert.NoError(t, err)
	assert.Equal(t, `print "hi";`, src)
}

func TestLoadScriptMissingFileIsError(t *testing.T) {
	_, err := LoadScript(filepath.Join(t.TempDir(), "missing.lox"))
	assert.Error(t, err)
}

func TestWatcherNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print 1;`), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	changes := make(chan string, 1)
	go w.Run(func(contents string) { changes <- contents })

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`print 2;`), 0o644))

	select {
	case contents := <-changes:
		assert.Equal(t, `print 2;`, contents)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch notification")
	}
}
