package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/photo-importer/internal"
	"github.com/moyu-x/photo-importer/pkg/grouper"
	"github.com/moyu-x/photo-importer/pkg/scanner"
	"github.com/moyu-x/photo-importer/pkg/transfer"
	"github.com/moyu-x/photo-importer/pkg/volume"
)

const (
	cardRoot    = "/Volumes/CARD"
	cardDCIM    = cardRoot + "/DCIM/100PHOTO"
	libraryRoot = "/Pictures"
	may1        = libraryRoot + "/SD Card Import 01-May-2023"
	may2        = libraryRoot + "/SD Card Import 02-May-2023"
)

var errInjected = errors.New("injected failure")

// faultFs 在指定路径上注入错误
type faultFs struct {
	afero.Fs
	failRenameFrom string
	failMkdir      string
}

func (f *faultFs) Rename(oldname, newname string) error {
	if f.failRenameFrom != "" && strings.HasPrefix(oldname, f.failRenameFrom) {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: errInjected}
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *faultFs) MkdirAll(path string, perm os.FileMode) error {
	if f.failMkdir != "" && path == f.failMkdir {
		return &os.PathError{Op: "mkdir", Path: path, Err: errInjected}
	}
	return f.Fs.MkdirAll(path, perm)
}

func writeImage(t *testing.T, fs afero.Fs, path string, created time.Time) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte("image:"+filepath.Base(path)), 0644); err != nil {
		t.Fatalf("创建文件失败 %s: %v", path, err)
	}
	if err := fs.Chtimes(path, created, created); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}
}

func day(d int) time.Time {
	return time.Date(2023, 5, d, 10, 0, 0, 0, time.UTC)
}

// newCard 准备一张包含三张新图片的 SD 卡和一个已有 IMG1 的图库
func newCard(t *testing.T, fs afero.Fs) {
	t.Helper()
	writeImage(t, fs, cardDCIM+"/IMG1.JPG", day(1))
	writeImage(t, fs, cardDCIM+"/IMG2.JPG", day(1))
	writeImage(t, fs, cardDCIM+"/IMG3.JPG", day(1))
	writeImage(t, fs, cardDCIM+"/IMG4.PNG", day(2))
	writeImage(t, fs, cardDCIM+"/._IMG4.PNG", day(2))
	writeImage(t, fs, cardRoot+"/DCIM/.trash/IMG5.JPG", day(2))
	writeImage(t, fs, cardDCIM+"/NOTES.TXT", day(2))
	writeImage(t, fs, libraryRoot+"/2022/img1.jpg", day(1))
}

func newImporter(fs afero.Fs, selector volume.Selector) *Importer {
	return &Importer{
		Volumes:     volume.NewDiscoverer(fs, []string{"/Volumes"}),
		Locator:     volume.NewLocator(selector),
		Scanner:     scanner.NewScanner(fs, internal.DefaultExtensions, "Volumes"),
		Grouper:     grouper.NewGrouper(internal.DefaultFolderFormat, nil),
		Provisioner: transfer.NewProvisioner(fs),
		Transferer:  transfer.NewTransferer(fs),
		LibraryRoot: libraryRoot,
		ImageDir:    internal.DefaultImageDir,
		MountPrefix: "/Volumes",
		MediaTypes:  []internal.MediaType{internal.MediaRemovable, internal.MediaFixed},
	}
}

func exists(fs afero.Fs, path string) bool {
	ok, _ := afero.Exists(fs, path)
	return ok
}

func TestImporter_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	newCard(t, fs)

	stats, err := newImporter(fs, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Volume.Path != cardRoot {
		t.Errorf("Volume = %s", stats.Volume.Path)
	}
	if stats.ImagesFound != 4 {
		t.Errorf("ImagesFound = %d, want 4", stats.ImagesFound)
	}
	if stats.LibraryImages != 1 {
		t.Errorf("LibraryImages = %d, want 1", stats.LibraryImages)
	}
	if stats.NewImages != 3 {
		t.Errorf("NewImages = %d, want 3", stats.NewImages)
	}
	if stats.Groups != 2 || stats.FoldersCreated != 2 {
		t.Errorf("Groups = %d, FoldersCreated = %d", stats.Groups, stats.FoldersCreated)
	}
	if stats.Moved != 3 || stats.Copied != 0 || stats.Failed != 0 {
		t.Errorf("Moved = %d, Copied = %d, Failed = %d", stats.Moved, stats.Copied, stats.Failed)
	}
	if stats.RunID == "" {
		t.Error("Expected a run id")
	}

	for _, path := range []string{may1 + "/IMG2.JPG", may1 + "/IMG3.JPG", may2 + "/IMG4.PNG"} {
		if !exists(fs, path) {
			t.Errorf("Expected %s to exist", path)
		}
	}
	for _, path := range []string{cardDCIM + "/IMG2.JPG", cardDCIM + "/IMG3.JPG", cardDCIM + "/IMG4.PNG"} {
		if exists(fs, path) {
			t.Errorf("Expected %s to be moved off the card", path)
		}
	}

	// 已在图库中的图片、隐藏文件和非图片不动
	for _, path := range []string{cardDCIM + "/IMG1.JPG", cardDCIM + "/._IMG4.PNG", cardRoot + "/DCIM/.trash/IMG5.JPG", cardDCIM + "/NOTES.TXT"} {
		if !exists(fs, path) {
			t.Errorf("Expected %s to stay on the card", path)
		}
	}
	if exists(fs, may1+"/IMG1.JPG") || exists(fs, may2+"/IMG5.JPG") {
		t.Error("Existing or hidden images must not be imported")
	}

	if !strings.Contains(stats.String(), "新图片: 3") {
		t.Errorf("Summary missing new image count: %s", stats.String())
	}
}

func TestImporter_NoVolumeFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeImage(t, fs, "/media/CARD/DCIM/IMG1.JPG", day(1))

	stats, err := newImporter(fs, nil).Run()
	if !errors.Is(err, internal.ErrNoVolumeFound) {
		t.Fatalf("Expected ErrNoVolumeFound, got %v", err)
	}
	if stats != nil {
		t.Errorf("Expected nil stats, got %+v", stats)
	}
	if exists(fs, libraryRoot) {
		t.Error("Library root must not be created")
	}
	if !exists(fs, "/media/CARD/DCIM/IMG1.JPG") {
		t.Error("Source file must not be touched")
	}
}

func TestImporter_MultipleVolumes(t *testing.T) {
	fs := afero.NewMemMapFs()
	newCard(t, fs)
	writeImage(t, fs, "/Volumes/EOS/DCIM/100CANON/IMG_9000.JPG", day(3))

	t.Run("label selector", func(t *testing.T) {
		stats, err := newImporter(fs, volume.LabelSelector{Label: "eos"}).Run()
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if stats.Volume.Label != "EOS" || stats.Moved != 1 {
			t.Errorf("Volume = %s, Moved = %d", stats.Volume.Label, stats.Moved)
		}
		if !exists(fs, libraryRoot+"/SD Card Import 03-May-2023/IMG_9000.JPG") {
			t.Error("Expected IMG_9000.JPG to be imported")
		}
	})

	t.Run("no selector", func(t *testing.T) {
		_, err := newImporter(fs, nil).Run()
		if !errors.Is(err, internal.ErrVolumeSelectionFailed) {
			t.Errorf("Expected ErrVolumeSelectionFailed, got %v", err)
		}
	})
}

func TestImporter_MissingImageDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/Volumes/USB/Documents", 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	_, err := newImporter(fs, nil).Run()
	if !errors.Is(err, internal.ErrScan) {
		t.Errorf("Expected ErrScan, got %v", err)
	}
	if exists(fs, libraryRoot) {
		t.Error("Library root must not be created")
	}
}

func TestImporter_MissingLibrary(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeImage(t, fs, cardDCIM+"/IMG1.JPG", day(1))

	stats, err := newImporter(fs, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.LibraryImages != 0 || stats.Moved != 1 {
		t.Errorf("LibraryImages = %d, Moved = %d", stats.LibraryImages, stats.Moved)
	}
	if !exists(fs, may1+"/IMG1.JPG") {
		t.Error("Expected IMG1.JPG to be imported into a new library")
	}
}

func TestImporter_GroupFailureIsolation(t *testing.T) {
	fs := &faultFs{Fs: afero.NewMemMapFs(), failMkdir: may1}
	newCard(t, fs)

	stats, err := newImporter(fs, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.SkippedGroups != 1 {
		t.Errorf("SkippedGroups = %d, want 1", stats.SkippedGroups)
	}
	if stats.FoldersCreated != 1 || stats.Moved != 1 || stats.Failed != 2 {
		t.Errorf("FoldersCreated = %d, Moved = %d, Failed = %d", stats.FoldersCreated, stats.Moved, stats.Failed)
	}
	if !exists(fs, may2+"/IMG4.PNG") {
		t.Error("The healthy group should still be imported")
	}
	for _, path := range []string{cardDCIM + "/IMG2.JPG", cardDCIM + "/IMG3.JPG"} {
		if !exists(fs, path) {
			t.Errorf("Expected %s to stay on the card", path)
		}
	}

	skipped := 0
	for _, r := range stats.Results {
		if r.Outcome == internal.OutcomeSkipped {
			skipped++
			if !strings.Contains(r.Reason, internal.ErrFolderCreation.Error()) {
				t.Errorf("Reason = %q", r.Reason)
			}
		}
	}
	if skipped != 2 {
		t.Errorf("Expected 2 skipped results, got %d", skipped)
	}
}

func TestImporter_CopyFallbackAndRerun(t *testing.T) {
	fs := &faultFs{Fs: afero.NewMemMapFs(), failRenameFrom: cardRoot}
	newCard(t, fs)

	stats, err := newImporter(fs, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Copied != 3 || stats.Moved != 0 || stats.Failed != 0 {
		t.Errorf("Moved = %d, Copied = %d, Failed = %d", stats.Moved, stats.Copied, stats.Failed)
	}
	for _, name := range []string{"IMG2.JPG", "IMG3.JPG", "IMG4.PNG"} {
		if !exists(fs, cardDCIM+"/"+name) {
			t.Errorf("Expected %s to stay on the card after copy", name)
		}
	}

	data, err := afero.ReadFile(fs, may1+"/IMG2.JPG")
	if err != nil || string(data) != "image:IMG2.JPG" {
		t.Errorf("Copied content = %q, %v", data, err)
	}

	// 再次导入时所有图片都已在图库中
	again, err := newImporter(fs, nil).Run()
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if again.NewImages != 0 || again.Groups != 0 || again.FoldersCreated != 0 {
		t.Errorf("NewImages = %d, Groups = %d, FoldersCreated = %d", again.NewImages, again.Groups, again.FoldersCreated)
	}
}

func TestImporter_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	newCard(t, fs)

	imp := newImporter(fs, nil)
	imp.DryRun = true
	rec := &stubRecorder{}
	imp.Recorder = rec

	stats, err := imp.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !stats.DryRun || stats.NewImages != 3 || stats.Groups != 2 {
		t.Errorf("DryRun = %v, NewImages = %d, Groups = %d", stats.DryRun, stats.NewImages, stats.Groups)
	}
	if stats.Moved != 0 || stats.FoldersCreated != 0 || len(stats.Results) != 0 {
		t.Errorf("Dry run should not transfer: %+v", stats)
	}
	if exists(fs, may1) || exists(fs, may2) {
		t.Error("Dry run must not create folders")
	}
	if !exists(fs, cardDCIM+"/IMG2.JPG") {
		t.Error("Dry run must not move files")
	}
	if rec.begun != 0 {
		t.Error("Dry run should not be recorded")
	}
}

type stubRecorder struct {
	begun     int
	transfers []internal.TransferResult
	finished  *internal.ImportStats
	runID     string
}

func (r *stubRecorder) BeginRun(stats *internal.ImportStats) error {
	r.begun++
	r.runID = stats.RunID
	return nil
}

func (r *stubRecorder) RecordTransfer(runID string, res internal.TransferResult) error {
	if runID != r.runID {
		return errors.New("unexpected run id")
	}
	r.transfers = append(r.transfers, res)
	return nil
}

func (r *stubRecorder) FinishRun(stats *internal.ImportStats) error {
	r.finished = stats
	return errors.New("journal closed")
}

type stubProgress struct {
	total    int
	advanced int
	done     bool
}

func (p *stubProgress) Start(total int)                 { p.total = total }
func (p *stubProgress) Advance(internal.TransferResult) { p.advanced++ }
func (p *stubProgress) Finish()                         { p.done = true }

func TestImporter_Observers(t *testing.T) {
	fs := afero.NewMemMapFs()
	newCard(t, fs)

	imp := newImporter(fs, nil)
	rec := &stubRecorder{}
	prog := &stubProgress{}
	imp.Recorder = rec
	imp.Progress = prog

	stats, err := imp.Run()
	if err != nil {
		t.Fatalf("Run() error should ignore recorder failures, got %v", err)
	}

	if rec.begun != 1 || len(rec.transfers) != 3 || rec.finished != stats {
		t.Errorf("begun = %d, transfers = %d, finished = %v", rec.begun, len(rec.transfers), rec.finished != nil)
	}
	if prog.total != 3 || prog.advanced != 3 || !prog.done {
		t.Errorf("progress = %+v", prog)
	}

	// 同一分组内按路径顺序处理
	if rec.transfers[0].File.Name != "IMG2.JPG" || rec.transfers[1].File.Name != "IMG3.JPG" {
		t.Errorf("Unexpected transfer order: %s, %s", rec.transfers[0].File.Name, rec.transfers[1].File.Name)
	}
}
