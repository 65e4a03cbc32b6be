// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fdio

import (
	"os"
	"testing"
)

func TestIsFIFOPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if !IsFIFO(int(r.Fd())) {
		t.Error("pipe read end should report IsFIFO")
	}
	if !IsFIFO(int(w.Fd())) {
		t.Error("pipe write end should report IsFIFO")
	}
	if IsSeekable(int(r.Fd())) {
		t.Error("pipe should not be seekable")
	}
}

func TestIsSeekableRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "fdio")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsFIFO(int(f.Fd())) {
		t.Error("regular file should not report IsFIFO")
	}
	if !IsSeekable(int(f.Fd())) {
		t.Error("regular file should be seekable")
	}
}

func TestReadAllWriteAllRoundTrip(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	want := []byte("hello fdio")
	go func() {
		defer w.Close()
		if !WriteAll(int(w.Fd()), want) {
			t.Error("WriteAll should have written all bytes")
		}
	}()

	got := make([]byte, len(want))
	n := ReadAll(int(r.Fd()), got)
	if n != len(want) {
		t.Fatalf("ReadAll returned %d, want %d", n, len(want))
	}
	if string(got) != string(want) {
		t.Fatalf("ReadAll got %q, want %q", got, want)
	}
}

func TestDevNullIsSingleton(t *testing.T) {
	fd1, err := DevNull()
	if err != nil {
		t.Fatal(err)
	}
	fd2, err := DevNull()
	if err != nil {
		t.Fatal(err)
	}
	if fd1 != fd2 {
		t.Errorf("DevNull returned different fds on successive calls: %d, %d", fd1, fd2)
	}
}

func TestPollPipeReadiness(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if Poll(int(r.Fd()), 0) {
		t.Error("empty pipe should not be reported readable on a zero-timeout peek")
	}

	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}

	if !Poll(int(r.Fd()), -1) {
		t.Error("pipe with pending data should be reported readable")
	}
}
