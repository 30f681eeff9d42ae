package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/hierarh/internal/api"
	"github.com/jackzampolin/hierarh/internal/rowparse"
)

func TestLog(t *testing.T) {
	l := New("book.xml")
	if l.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if New("book.xml").RunID == l.RunID {
		t.Error("run IDs must differ between runs")
	}

	l.Add("ЯРОСЛАВСКАЯ", 40, "1682 – Афанасий", rowparse.Divide("1682 – Афанасий").Failure())
	l.Add("АРХАНГЕЛЬСКАЯ", 12, "23.04.? г. – 1900 – Андрей", rowparse.ParseDating("23.04.? г.").Failure())
	l.Add("АРХАНГЕЛЬСКАЯ", 10, "1921 – 1922 – Андрей Сухенко 1921 г.", rowparse.ParseName("Андрей Сухенко 1921 г.").Failure())

	if l.Failures() != 3 {
		t.Errorf("Failures() = %d", l.Failures())
	}
	if l.Counts[rowparse.DatingFailure] != 1 || l.Counts[rowparse.DivideFailure] != 1 {
		t.Errorf("unexpected counts %v", l.Counts)
	}

	sorted := l.Sorted()
	if sorted[0].Line != 10 || sorted[1].Line != 12 || sorted[2].Header != "ЯРОСЛАВСКАЯ" {
		t.Errorf("unexpected order %+v", sorted)
	}
	if sorted[1].Text != "23.04.? г." || sorted[1].Row != "23.04.? г. – 1900 – Андрей" {
		t.Errorf("entry must keep the cell and the row: %+v", sorted[1])
	}
	if l.Entries[0].Header != "ЯРОСЛАВСКАЯ" {
		t.Error("Sorted must not reorder the log itself")
	}
}

func TestLog_WriteFile(t *testing.T) {
	l := New("book.xml")
	l.CountSee()
	l.CountRow()
	l.Add("АРХАНГЕЛЬСКАЯ", 12, "23.04.? г. – 1900 – Андрей", rowparse.ParseDating("23.04.? г.").Failure())

	for _, format := range []api.OutputFormat{api.OutputFormatYAML, api.OutputFormatJSON} {
		path := filepath.Join(t.TempDir(), "out", "report."+string(format))
		if err := l.WriteFile(path, format); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", format, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "23.04.? г.") || !strings.Contains(string(data), l.RunID) {
			t.Errorf("%s report misses content:\n%s", format, data)
		}
	}

	if err := l.WriteFile(filepath.Join(t.TempDir(), "r.txt"), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
