package service

import (
	"context"
	"encoding/base64"
	"errors"
	"reflect"
	"testing"
	"time"

	perr "autofax/internal/platform/errors"
	"autofax/internal/services/api/pcp/domain"
	"autofax/internal/services/api/pcp/repo"
)

type fakeRepo struct {
	row  repo.RowProvider
	err  error
	ins  []string
	loc  string
	hits int

	saved   []repo.RowSubmission
	saveErr error
}

func (f *fakeRepo) SaveSubmission(_ context.Context, s repo.RowSubmission) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.saved = append(f.saved, s)
	return int64(len(f.saved)), nil
}

func (f *fakeRepo) BestProvider(_ context.Context, ins []string, loc string) (repo.RowProvider, error) {
	f.hits++
	f.ins, f.loc = ins, loc
	return f.row, f.err
}

func TestBestProvider_ExpandsAliases(t *testing.T) {
	f := &fakeRepo{row: repo.RowProvider{ProviderName: "Jane Roe MD", NPI: "1234567890", MatchType: 2}}
	s := New(f)

	got, err := s.BestProvider(context.Background(), domain.ProviderInput{Insurance: "Healthfirst", Location: "LIC"})
	if err != nil {
		t.Fatalf("BestProvider: %v", err)
	}
	if got != (domain.Provider{ProviderName: "Jane Roe MD", NPI: "1234567890"}) {
		t.Fatalf("provider = %+v", got)
	}
	if f.loc != "Long Island City" {
		t.Fatalf("location = %q", f.loc)
	}
	if !reflect.DeepEqual(f.ins, []string{"Healthfirst Medicaid", "Healthfirst Medicare", "Healthfirst Other LOB"}) {
		t.Fatalf("insurances = %v", f.ins)
	}
}

func TestBestProvider_PropagatesErrors(t *testing.T) {
	f := &fakeRepo{err: perr.NotFoundf("no rows")}
	_, err := New(f).BestProvider(context.Background(), domain.ProviderInput{Insurance: "Aetna", Location: "Astoria"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}

	boom := errors.New("boom")
	f.err = boom
	if _, err := New(f).BestProvider(context.Background(), domain.ProviderInput{Insurance: "Aetna", Location: "Astoria"}); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestBestProvider_NoDirectory(t *testing.T) {
	s := New(nil)
	if s.HasDirectory() {
		t.Fatalf("HasDirectory should be false without a repo")
	}
	_, err := s.BestProvider(context.Background(), domain.ProviderInput{Insurance: "Aetna", Location: "Astoria"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want Unavailable, got %v", err)
	}
}

func TestForm(t *testing.T) {
	s := New(nil)
	if got := s.Form(domain.FormInput{Insurance: "Fidelis"}); len(got.Fields) != 5 || len(got.PDFFields) != 3 {
		t.Fatalf("Fidelis template = %+v", got)
	}
	if got := s.Form(domain.FormInput{}); len(got.Fields) != 0 {
		t.Fatalf("empty plan should have no fields, got %+v", got.Fields)
	}
}

func TestSubmit(t *testing.T) {
	f := &fakeRepo{}
	in := domain.SubmissionInput{Insurance: " Aetna ", Location: "LIC", PDFURL: " https://files.test/a.pdf"}
	if err := New(f).Submit(context.Background(), in); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	want := repo.RowSubmission{Insurance: "Aetna", Location: "Long Island City", PDFURL: "https://files.test/a.pdf"}
	if len(f.saved) != 1 || f.saved[0] != want {
		t.Fatalf("saved %+v", f.saved)
	}

	boom := errors.New("conn refused")
	err := New(&fakeRepo{saveErr: boom}).Submit(context.Background(), in)
	if !errors.Is(err, boom) || !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("want DB coded boom, got %v", err)
	}

	if err := New(nil).Submit(context.Background(), in); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want Unavailable, got %v", err)
	}
}

type fakeFiles struct {
	puts map[string][]byte
	err  error
}

func (f *fakeFiles) Put(_ context.Context, key string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[key] = data
	return "https://fax.test/files/" + key, nil
}

func TestUpload(t *testing.T) {
	clock := func() time.Time { return time.UnixMilli(1741200000000) }
	pdf := []byte("%PDF-1.7\nfilled")

	cases := []struct {
		name   string
		buffer string
	}{
		{"padded", base64.StdEncoding.EncodeToString(pdf)},
		{"unpadded", base64.RawStdEncoding.EncodeToString(pdf)},
		{"data url", "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, files := &fakeRepo{}, &fakeFiles{}
			s := New(r, WithFiles(files), WithClock(clock))

			url, err := s.Upload(context.Background(), domain.UploadInput{Insurance: " Elder Plan ", Location: "LIC", PDFBuffer: tc.buffer})
			if err != nil {
				t.Fatalf("Upload: %v", err)
			}
			key := "pcp_forms/Elder Plan_PCP_Form_1741200000000.pdf"
			if url != "https://fax.test/files/"+key || string(files.puts[key]) != string(pdf) {
				t.Fatalf("url %q puts %v", url, files.puts)
			}
			want := repo.RowSubmission{Insurance: "Elder Plan", Location: "Long Island City", PDFURL: url}
			if len(r.saved) != 1 || r.saved[0] != want {
				t.Fatalf("saved %+v", r.saved)
			}
		})
	}
}

func TestUpload_Errors(t *testing.T) {
	good := base64.StdEncoding.EncodeToString([]byte("%PDF"))
	boom := errors.New("boom")
	cases := []struct {
		name     string
		svc      *Svc
		insur    string
		buffer   string
		wantCode perr.ErrorCode
	}{
		{"no files", New(&fakeRepo{}), "Aetna", good, perr.ErrorCodeUnavailable},
		{"no directory", New(nil, WithFiles(&fakeFiles{})), "Aetna", good, perr.ErrorCodeUnavailable},
		{"not base64", New(&fakeRepo{}, WithFiles(&fakeFiles{})), "Aetna", "%%%", perr.ErrorCodeValidation},
		{"decodes empty", New(&fakeRepo{}, WithFiles(&fakeFiles{})), "Aetna", "====", perr.ErrorCodeValidation},
		{"store fails", New(&fakeRepo{}, WithFiles(&fakeFiles{err: boom})), "Aetna", good, perr.ErrorCodeUnknown},
		{"record fails", New(&fakeRepo{saveErr: boom}, WithFiles(&fakeFiles{})), "Aetna", good, perr.ErrorCodeDB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.svc.Upload(context.Background(), domain.UploadInput{Insurance: tc.insur, Location: "LIC", PDFBuffer: tc.buffer})
			if !perr.IsCode(err, tc.wantCode) {
				t.Fatalf("want code %v, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestUpload_PlanNameCannotOpenDirectories(t *testing.T) {
	files := &fakeFiles{}
	s := New(&fakeRepo{}, WithFiles(files), WithClock(func() time.Time { return time.UnixMilli(1) }))
	if _, err := s.Upload(context.Background(), domain.UploadInput{
		Insurance: "../x/y", Location: "LIC", PDFBuffer: base64.StdEncoding.EncodeToString([]byte("%PDF")),
	}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, ok := files.puts["pcp_forms/..-x-y_PCP_Form_1.pdf"]; !ok {
		t.Fatalf("puts %v", files.puts)
	}
}
