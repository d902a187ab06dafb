package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/config"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
	"github.com/nguyentantai21042004/lead-digest/internal/model"
	"github.com/nguyentantai21042004/lead-digest/internal/speechkit"
	"github.com/nguyentantai21042004/lead-digest/internal/storage"
)

// fakeExecutor stands in for ffmpeg and writes oggSize bytes to the output argument.
// A set interrupt is called mid-conversion, the way Ctrl+C lands during ffmpeg.
type fakeExecutor struct {
	oggSize   int
	err       error
	interrupt context.CancelFunc
	calls     [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	if f.interrupt != nil {
		f.interrupt()
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	out := args[len(args)-2]
	return "", os.WriteFile(out, make([]byte, f.oggSize), 0644)
}

func (f *fakeExecutor) LookPath(name string) (string, error) { return "/usr/bin/" + name, nil }

type fakeSTT struct {
	text       string
	waitErr    error
	recognized int
	submitted  []string
	waited     int
}

func (f *fakeSTT) Recognize(context.Context, []byte) (string, error) {
	f.recognized++
	return f.text, nil
}

func (f *fakeSTT) Submit(_ context.Context, uri string) (string, error) {
	f.submitted = append(f.submitted, uri)
	return "op-1", nil
}

func (f *fakeSTT) Wait(context.Context, string) (string, error) {
	f.waited++
	return f.text, f.waitErr
}

func (f *fakeSTT) CheckKey(context.Context) (speechkit.KeyCheck, error) {
	return speechkit.KeyCheck{}, nil
}

func (f *fakeSTT) calls() int { return f.recognized + len(f.submitted) }

type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (f *fakeUploader) Upload(_ context.Context, localPath string) (storage.Object, error) {
	f.uploaded = append(f.uploaded, localPath)
	return storage.Object{Key: "recordings/a.ogg", URI: "https://bucket/recordings/a.ogg"}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) Close() error { return nil }

type fakeTranscripts struct {
	rows []model.ProcessedFile
}

func (f *fakeTranscripts) ListCompleted(context.Context, string, time.Time) ([]model.ProcessedFile, error) {
	return nil, nil
}

func (f *fakeTranscripts) Leads(context.Context, time.Time) ([]string, error) { return nil, nil }

func (f *fakeTranscripts) Start(_ context.Context, leadID, filename string) (*model.ProcessedFile, error) {
	f.rows = append(f.rows, model.ProcessedFile{ID: uint(len(f.rows) + 1), LeadID: leadID, Filename: filename, Status: model.StatusPending})
	return &f.rows[len(f.rows)-1], nil
}

func (f *fakeTranscripts) Complete(_ context.Context, id uint, text string) error {
	f.rows[id-1].Status = model.StatusCompleted
	f.rows[id-1].TranscriptText = &text
	return nil
}

func (f *fakeTranscripts) Fail(_ context.Context, id uint) error {
	f.rows[id-1].Status = model.StatusFailed
	return nil
}

type fixture struct {
	exec        *fakeExecutor
	stt         *fakeSTT
	transcripts *fakeTranscripts
	cfg         *config.Config
	dir         string
}

func newFixture(t *testing.T, oggSize int) *fixture {
	t.Helper()
	cfg := &config.Config{
		FFmpeg: config.FFmpegConfig{BinaryPath: "ffmpeg", Bitrate: "64k"},
		Paths:  config.PathsConfig{Temp: t.TempDir()},
	}
	return &fixture{
		exec:        &fakeExecutor{oggSize: oggSize},
		stt:         &fakeSTT{text: "добрый день"},
		transcripts: &fakeTranscripts{},
		cfg:         cfg,
		dir:         t.TempDir(),
	}
}

func (f *fixture) processor(uploader storage.Uploader) Processor {
	deps := Deps{Executor: f.exec, STT: f.stt, Transcripts: f.transcripts}
	if uploader != nil {
		deps.Uploader = uploader
	}
	return New(f.cfg, deps, logger.NewNop())
}

func (f *fixture) recording(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte("webm"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessSync(t *testing.T) {
	f := newFixture(t, inlineLimit-1)
	path := f.recording(t, "LEAD-101_2026-02-20_14-30.webm")

	res, err := f.processor(nil).Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if f.stt.recognized != 1 || len(f.stt.submitted) != 0 {
		t.Errorf("recognized = %d, submitted = %d; want sync only", f.stt.recognized, len(f.stt.submitted))
	}
	wantOut := filepath.Join(f.dir, "LEAD-101_2026-02-20_14-30_transcript.txt")
	if res.Output != wantOut {
		t.Errorf("Output = %q, want %q", res.Output, wantOut)
	}
	if data, _ := os.ReadFile(wantOut); string(data) != "добрый день" {
		t.Errorf("transcript = %q", data)
	}

	args := f.exec.calls[0]
	want := []string{"ffmpeg", "-i", path, "-vn", "-acodec", "libopus", "-b:a", "64k", "-ac", "1", "-ar", "16000"}
	for i, w := range want {
		if args[i] != w {
			t.Fatalf("ffmpeg args = %v", args)
		}
	}
	if args[len(args)-1] != "-y" || filepath.Ext(args[len(args)-2]) != ".ogg" {
		t.Errorf("ffmpeg output args = %v", args[len(args)-2:])
	}
	if _, err := os.Stat(args[len(args)-2]); !os.IsNotExist(err) {
		t.Error("temp audio left behind")
	}

	if len(f.transcripts.rows) != 1 {
		t.Fatalf("records = %d, want 1", len(f.transcripts.rows))
	}
	rec := f.transcripts.rows[0]
	if rec.LeadID != "101" || rec.Status != model.StatusCompleted || *rec.TranscriptText != "добрый день" {
		t.Errorf("record = %+v", rec)
	}
}

func TestProcessBoundaryNeedsConfiguration(t *testing.T) {
	f := newFixture(t, inlineLimit)
	path := f.recording(t, "LEAD-7_call.mp3")

	_, err := f.processor(nil).Process(context.Background(), path)
	if !errors.Is(err, ErrNeedsConfiguration) {
		t.Fatalf("Process() error = %v, want ErrNeedsConfiguration", err)
	}
	if f.stt.calls() != 0 {
		t.Error("speech API called without storage")
	}
	if f.transcripts.rows[0].Status != model.StatusFailed {
		t.Errorf("record status = %q, want failed", f.transcripts.rows[0].Status)
	}
	if _, err := os.Stat(OutputPath(path)); !os.IsNotExist(err) {
		t.Error("transcript written on failure")
	}
}

func TestProcessAsync(t *testing.T) {
	f := newFixture(t, inlineLimit)
	up := &fakeUploader{}
	path := f.recording(t, "meeting.wav")

	res, err := f.processor(up).Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if f.stt.recognized != 0 || len(f.stt.submitted) != 1 || f.stt.waited != 1 {
		t.Errorf("stt calls: recognized %d, submitted %v, waited %d", f.stt.recognized, f.stt.submitted, f.stt.waited)
	}
	if f.stt.submitted[0] != "https://bucket/recordings/a.ogg" {
		t.Errorf("submitted uri = %q", f.stt.submitted[0])
	}
	if len(up.deleted) != 1 {
		t.Error("uploaded audio not removed")
	}
	if res.Text != "добрый день" {
		t.Errorf("Text = %q", res.Text)
	}
	if len(f.transcripts.rows) != 0 {
		t.Error("record created for a file without a lead")
	}
}

func TestProcessAsyncFailure(t *testing.T) {
	f := newFixture(t, inlineLimit+1)
	f.stt.waitErr = speechkit.ErrPollTimeout
	up := &fakeUploader{}
	path := f.recording(t, "LEAD-5_x.ogg")

	_, err := f.processor(up).Process(context.Background(), path)
	if !errors.Is(err, speechkit.ErrPollTimeout) {
		t.Fatalf("Process() error = %v", err)
	}
	if len(up.deleted) != 1 {
		t.Error("uploaded audio not removed after failure")
	}
	if f.transcripts.rows[0].Status != model.StatusFailed {
		t.Error("record not marked failed")
	}
}

func TestProcessSkipsExistingOutput(t *testing.T) {
	f := newFixture(t, 10)
	path := f.recording(t, "LEAD-101_a.webm")
	if err := os.WriteFile(OutputPath(path), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := f.processor(nil).Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Error("expected skip")
	}
	if len(f.exec.calls) != 0 || f.stt.calls() != 0 {
		t.Errorf("conversions = %d, api calls = %d; want none", len(f.exec.calls), f.stt.calls())
	}
}

func TestProcessTooLarge(t *testing.T) {
	f := newFixture(t, 10)
	path := filepath.Join(f.dir, "huge.mp4")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := fh.Truncate(maxInputBytes + 1); err != nil {
		t.Fatal(err)
	}
	fh.Close()

	_, err = f.processor(nil).Process(context.Background(), path)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Process() error = %v, want ErrTooLarge", err)
	}
	if len(f.exec.calls) != 0 {
		t.Error("oversized file converted")
	}
}

func TestProcessDirCountsOversizedAsSkipped(t *testing.T) {
	f := newFixture(t, 10)
	f.recording(t, "a.webm")
	fh, err := os.Create(filepath.Join(f.dir, "huge.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	if err := fh.Truncate(maxInputBytes + 1); err != nil {
		t.Fatal(err)
	}
	fh.Close()

	stats, err := f.processor(nil).ProcessDir(context.Background(), f.dir)
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Total: 2, Transcribed: 1, Skipped: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestProcessFinishesAfterInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture(t, 10)
	f.exec.interrupt = cancel
	path := f.recording(t, "LEAD-101_2026-02-20_14-30.webm")

	res, err := f.processor(nil).Process(ctx, path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Text != "добрый день" {
		t.Errorf("Text = %q", res.Text)
	}
	if f.transcripts.rows[0].Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", f.transcripts.rows[0].Status)
	}
}

func TestProcessDirStopsBetweenFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture(t, 10)
	f.exec.interrupt = cancel
	f.recording(t, "a.webm")
	f.recording(t, "b.webm")

	stats, err := f.processor(nil).ProcessDir(ctx, f.dir)
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Total: 2, Transcribed: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestProcessConvertFailure(t *testing.T) {
	f := newFixture(t, 10)
	f.exec.err = errors.New("exit status 1")
	path := f.recording(t, "LEAD-9_broken.webm")

	if _, err := f.processor(nil).Process(context.Background(), path); err == nil {
		t.Fatal("expected error")
	}
	if f.stt.calls() != 0 {
		t.Error("speech API called after failed conversion")
	}
	if f.transcripts.rows[0].Status != model.StatusFailed {
		t.Error("record not marked failed")
	}
}

func TestProcessEmptyText(t *testing.T) {
	f := newFixture(t, 10)
	f.stt.text = ""
	path := f.recording(t, "silence.ogg")

	res, err := f.processor(nil).Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(res.Output); err != nil || info.Size() != 0 {
		t.Errorf("empty transcript not written: %v", err)
	}
}

func TestProcessDir(t *testing.T) {
	f := newFixture(t, 10)
	f.recording(t, "b.mp3")
	f.recording(t, "a.webm")
	f.recording(t, "notes.txt")
	done := f.recording(t, "c.flac")
	if err := os.WriteFile(OutputPath(done), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(f.dir, "sub.ogg"), 0755); err != nil {
		t.Fatal(err)
	}

	stats, err := f.processor(nil).ProcessDir(context.Background(), f.dir)
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Total: 3, Transcribed: 2, Skipped: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if f.exec.calls[0][2] != filepath.Join(f.dir, "a.webm") {
		t.Errorf("first converted %q, want sorted order", f.exec.calls[0][2])
	}
}

func TestProcessDirContinuesAfterFailure(t *testing.T) {
	f := newFixture(t, inlineLimit)
	f.recording(t, "a.webm")
	f.recording(t, "b.webm")

	stats, err := f.processor(nil).ProcessDir(context.Background(), f.dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 2 || len(f.exec.calls) != 2 {
		t.Errorf("stats = %+v, conversions = %d", stats, len(f.exec.calls))
	}
}

func TestLeadFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/rec/LEAD-101_2026-02-20_14-30.webm", "101"},
		{"call_LEAD-42.mp3", "42"},
		{"lead-42.mp3", ""},
		{"meeting.wav", ""},
	}
	for _, tt := range tests {
		if got := leadFromFilename(tt.path); got != tt.want {
			t.Errorf("leadFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsAudio(t *testing.T) {
	for _, name := range []string{"a.webm", "a.MP3", "a.ogg", "a.wav", "a.mp4", "a.m4a", "a.flac"} {
		if !IsAudio(name) {
			t.Errorf("IsAudio(%q) = false", name)
		}
	}
	for _, name := range []string{"a.txt", "a_transcript.txt", "a.mov", "a"} {
		if IsAudio(name) {
			t.Errorf("IsAudio(%q) = true", name)
		}
	}
}
