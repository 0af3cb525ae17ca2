package backend

import (
	"context"
	"errors"
	"testing"

	"ticketcsv/source"
)

type fakeExporter struct {
	authErr error
	csv     string
	gotTok  string
}

func (f *fakeExporter) Authenticate(context.Context) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return "tok", nil
}

func (f *fakeExporter) ExportPending(_ context.Context, token string) (string, error) {
	f.gotTok = token
	return f.csv, nil
}

func TestDriver_FetchCarriesToken(t *testing.T) {
	src, err := source.NewAdapter("backend")
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	fake := &fakeExporter{csv: "id,status\n1,PENDING\n"}
	if err := src.Configure(fake); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	f, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if f.Token != "tok" || fake.gotTok != "tok" || f.CSV != fake.csv {
		t.Fatalf("unexpected frame %+v", f)
	}
}

func TestDriver_AuthFailureStopsFetch(t *testing.T) {
	d := &driver{}
	fake := &fakeExporter{authErr: errors.New("denied")}
	_ = d.Configure(fake)
	if _, err := d.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if fake.gotTok != "" {
		t.Fatal("export should not run without a token")
	}
}

func TestDriver_RejectsUnknownConfig(t *testing.T) {
	if err := (&driver{}).Configure(42); err == nil {
		t.Fatal("expected error for int config")
	}
}
