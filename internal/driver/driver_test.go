package driver

import "testing"

func TestResolveFilesOkay(t *testing.T) {
	ramFile, cFile, err := ResolveFiles([]string{"program.ram", "driver.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ramFile != "program.ram" || cFile != "driver.c" {
		t.Errorf("got (%q, %q)", ramFile, cFile)
	}
}

func TestResolveFilesOrderIndependent(t *testing.T) {
	ramFile, cFile, err := ResolveFiles([]string{"driver.c", "program.ram"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ramFile != "program.ram" || cFile != "driver.c" {
		t.Errorf("got (%q, %q)", ramFile, cFile)
	}
}

func TestResolveFilesRejectsUnknownExtension(t *testing.T) {
	if _, _, err := ResolveFiles([]string{"program.ram", "driver.c", "notes.txt"}); err == nil {
		t.Fatal("expected an error for an unrecognized file extension")
	}
}

func TestResolveFilesRejectsMissingRamFile(t *testing.T) {
	if _, _, err := ResolveFiles([]string{"driver.c"}); err == nil {
		t.Fatal("expected an error when no .ram file is given")
	}
}

func TestResolveFilesRejectsMissingCFile(t *testing.T) {
	if _, _, err := ResolveFiles([]string{"program.ram"}); err == nil {
		t.Fatal("expected an error when no .c file is given")
	}
}

func TestResolveFilesRejectsDuplicateRamFiles(t *testing.T) {
	if _, _, err := ResolveFiles([]string{"a.ram", "b.ram", "driver.c"}); err == nil {
		t.Fatal("expected an error for two .ram files")
	}
}

func TestOutputNameStripsExtension(t *testing.T) {
	if got := outputName("program.ram"); got != "program" {
		t.Errorf("outputName(%q) = %q, want %q", "program.ram", got, "program")
	}
}
