package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"autofax/internal/core/faxnumber"
	perr "autofax/internal/platform/errors"
	"autofax/internal/services/api/fax/domain"
)

// fakeDoc counts releases so tests can assert exactly-once cleanup
type fakeDoc struct {
	name     string
	content  []byte
	readErr  error
	relErr   error
	releases int
}

func (d *fakeDoc) Name() string           { return d.name }
func (d *fakeDoc) Bytes() ([]byte, error) { return d.content, d.readErr }
func (d *fakeDoc) Release() error {
	d.releases++
	return d.relErr
}

type fakeFetcher struct {
	doc   *fakeDoc
	err   error
	calls int
	urls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (domain.TransientDocument, error) {
	f.calls++
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type fakeGateway struct {
	authErr  error
	reply    domain.GatewayReply
	sendErr  error
	panicMsg string
	jobs     []domain.TransmissionJob
	auths    int
}

func (g *fakeGateway) Authenticate(context.Context) error {
	g.auths++
	return g.authErr
}

func (g *fakeGateway) SubmitFax(_ context.Context, job domain.TransmissionJob) (domain.GatewayReply, error) {
	if g.panicMsg != "" {
		panic(g.panicMsg)
	}
	g.jobs = append(g.jobs, job)
	return g.reply, g.sendErr
}

type fakeRecorder struct {
	mu     sync.Mutex
	stages []string
}

func (r *fakeRecorder) RecordDispatch(stage string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

const docURL = "https://storage.example.com/pcp_forms/Healthfirst_PCP_Form_1741200000000.pdf"

func newSvc(f *fakeFetcher, g *fakeGateway, rec domain.Recorder) *Svc {
	return New(faxnumber.NewResolver(nil), f, g,
		WithRecorder(rec),
		WithIDFunc(func() string { return "dispatch-1" }),
	)
}

func okDoc() *fakeDoc {
	return &fakeDoc{name: "autofax-123.pdf", content: []byte("%PDF-1.4 body")}
}

func TestNew_PanicsOnNilPorts(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"resolver", func() { New(nil, &fakeFetcher{}, &fakeGateway{}) }},
		{"fetcher", func() { New(faxnumber.NewResolver(nil), nil, &fakeGateway{}) }},
		{"gateway", func() { New(faxnumber.NewResolver(nil), &fakeFetcher{}, nil) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestResolve_Delegates(t *testing.T) {
	s := newSvc(&fakeFetcher{}, &fakeGateway{}, nil)
	got, err := s.Resolve(docURL)
	if err != nil || got != "+15166651328" {
		t.Fatalf("got %q %v", got, err)
	}
	if _, err := s.Resolve("https://x.test/unknown_sender.pdf"); !errors.Is(err, faxnumber.ErrNoMatch) {
		t.Fatalf("want ErrNoMatch, got %v", err)
	}
}

func TestDispatch_Success(t *testing.T) {
	doc := okDoc()
	f := &fakeFetcher{doc: doc}
	g := &fakeGateway{reply: domain.GatewayReply{Status: 200, Reason: "OK"}}
	rec := &fakeRecorder{}

	out := newSvc(f, g, rec).Dispatch(context.Background(), docURL, "516-665-1328")

	if !out.OK() {
		t.Fatalf("expected success, got %+v", out)
	}
	if out.DispatchID != "dispatch-1" || out.Recipient != "+15166651328" {
		t.Fatalf("outcome %+v", out)
	}
	if g.auths != 1 || f.calls != 1 || f.urls[0] != docURL {
		t.Fatalf("auths=%d fetches=%d urls=%v", g.auths, f.calls, f.urls)
	}
	if len(g.jobs) != 1 {
		t.Fatalf("jobs %d", len(g.jobs))
	}
	job := g.jobs[0]
	if job.Recipient != "+15166651328" || job.Resolution != domain.ResolutionHigh || job.CoverText != "PCP Change Form" {
		t.Fatalf("job %+v", job)
	}
	if job.Attachment.Filename != "autofax-123.pdf" || job.Attachment.MIMEType != "application/pdf" || string(job.Attachment.Content) != "%PDF-1.4 body" {
		t.Fatalf("attachment %+v", job.Attachment)
	}
	if doc.releases != 1 {
		t.Fatalf("releases %d", doc.releases)
	}
	if len(rec.stages) != 1 || rec.stages[0] != "none" {
		t.Fatalf("recorded %v", rec.stages)
	}
}

func TestDispatch_FailureInjection(t *testing.T) {
	cases := []struct {
		name        string
		fetcher     *fakeFetcher
		gateway     *fakeGateway
		wantStage   domain.Stage
		wantCode    perr.ErrorCode
		wantRelease int
		wantFetch   int
		wantDetail  string
	}{
		{
			name:        "auth",
			fetcher:     &fakeFetcher{doc: okDoc()},
			gateway:     &fakeGateway{authErr: errors.New("invalid_grant")},
			wantStage:   domain.StageInternal,
			wantCode:    perr.ErrorCodeUnknown,
			wantRelease: 0,
			wantFetch:   0,
			wantDetail:  "invalid_grant",
		},
		{
			name:        "fetch",
			fetcher:     &fakeFetcher{err: perr.Upstreamf("document fetch failed: status 404")},
			gateway:     &fakeGateway{reply: domain.GatewayReply{Status: 200}},
			wantStage:   domain.StageFetch,
			wantCode:    perr.ErrorCodeUpstream,
			wantRelease: 0,
			wantFetch:   1,
			wantDetail:  "status 404",
		},
		{
			name:        "rejected",
			fetcher:     &fakeFetcher{doc: okDoc()},
			gateway:     &fakeGateway{reply: domain.GatewayReply{Status: 400, Reason: "Bad Request", Body: `{"errorCode":"FAX-101"}`}},
			wantStage:   domain.StageSubmission,
			wantCode:    perr.ErrorCodeUpstream,
			wantRelease: 1,
			wantFetch:   1,
			wantDetail:  "400 Bad Request",
		},
		{
			name:        "transport",
			fetcher:     &fakeFetcher{doc: okDoc()},
			gateway:     &fakeGateway{sendErr: errors.New("connection reset")},
			wantStage:   domain.StageSubmission,
			wantCode:    perr.ErrorCodeUpstream,
			wantRelease: 1,
			wantFetch:   1,
			wantDetail:  "connection reset",
		},
		{
			name:        "panic",
			fetcher:     &fakeFetcher{doc: okDoc()},
			gateway:     &fakeGateway{panicMsg: "boom"},
			wantStage:   domain.StageInternal,
			wantCode:    perr.ErrorCodePanic,
			wantRelease: 1,
			wantFetch:   1,
			wantDetail:  "boom",
		},
		{
			name:        "release error is swallowed",
			fetcher:     &fakeFetcher{doc: &fakeDoc{name: "a.pdf", content: []byte("x"), relErr: errors.New("busy")}},
			gateway:     &fakeGateway{reply: domain.GatewayReply{Status: 500, Reason: "Internal Server Error"}},
			wantStage:   domain.StageSubmission,
			wantCode:    perr.ErrorCodeUpstream,
			wantRelease: 1,
			wantFetch:   1,
			wantDetail:  "500 Internal Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			out := newSvc(tc.fetcher, tc.gateway, rec).Dispatch(context.Background(), docURL, "+15166651328")

			if out.OK() {
				t.Fatal("expected failure")
			}
			if out.Stage != tc.wantStage {
				t.Fatalf("stage %v want %v", out.Stage, tc.wantStage)
			}
			if got := perr.CodeOf(out.Err); got != tc.wantCode {
				t.Fatalf("code %v want %v", got, tc.wantCode)
			}
			if !strings.Contains(out.Details(), tc.wantDetail) {
				t.Fatalf("details %q missing %q", out.Details(), tc.wantDetail)
			}
			if tc.fetcher.calls != tc.wantFetch {
				t.Fatalf("fetch calls %d want %d", tc.fetcher.calls, tc.wantFetch)
			}
			if d := tc.fetcher.doc; d != nil && d.releases != tc.wantRelease {
				t.Fatalf("releases %d want %d", d.releases, tc.wantRelease)
			}
			if len(rec.stages) != 1 || rec.stages[0] != tc.wantStage.String() {
				t.Fatalf("recorded %v", rec.stages)
			}
		})
	}
}

func TestDispatch_NoRecorder(t *testing.T) {
	f := &fakeFetcher{doc: okDoc()}
	g := &fakeGateway{reply: domain.GatewayReply{Status: 202}}
	out := New(faxnumber.NewResolver(nil), f, g).Dispatch(context.Background(), docURL, "+15166651328")
	if !out.OK() || out.DispatchID == "" {
		t.Fatalf("outcome %+v", out)
	}
}
