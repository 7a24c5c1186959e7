package record_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/flowmatic/record"
)

var _ = Describe("DirBackend", func() {
	var (
		dir     string
		backend record.DirBackend
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		backend = record.DirBackend{Dir: dir}
	})

	It("should name files after the lowercase file name", func() {
		Expect(backend.Path("INVENTORY")).To(Equal(filepath.Join(dir, "inventory.dat")))
	})

	It("should load records and skip blank lines", func() {
		data := "NAME: BOLT, QTY: 12\n\nNAME: NUT, QTY: 3\n"
		Expect(os.WriteFile(backend.Path("INVENTORY"), []byte(data), 0o644)).To(Succeed())

		records, err := backend.Load("INVENTORY")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[1].String()).To(Equal("NAME: NUT, QTY: 3"))
	})

	It("should load lines of any length", func() {
		long := strings.Repeat("X", 200*1024)
		data := "NAME: " + long + "\nNAME: NUT"
		Expect(os.WriteFile(backend.Path("WIDE"), []byte(data), 0o644)).To(Succeed())

		records, err := backend.Load("WIDE")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))

		v, ok := records[0].Get("NAME")
		Expect(ok).To(BeTrue())
		Expect(v.String()).To(HaveLen(len(long)))
		Expect(records[1].String()).To(Equal("NAME: NUT"))
	})

	It("should fail to load a missing file", func() {
		_, err := backend.Load("NOPE")
		Expect(err).To(HaveOccurred())
	})

	It("should persist records one per line", func() {
		err := backend.Persist("REPORT", []*record.Record{
			record.FromPairs("NAME", "BOLT", "QTY", "12"),
			record.FromPairs("NAME", "NUT"),
		})
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(filepath.Join(dir, "report.dat"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("NAME: BOLT, QTY: 12\nNAME: NUT\n"))
	})
})

var _ = Describe("MemBackend", func() {
	It("should hand out copies", func() {
		b := record.NewMemBackend()
		b.Put("inventory", record.FromPairs("QTY", "1"))

		first, err := b.Load("INVENTORY")
		Expect(err).NotTo(HaveOccurred())
		first[0].Set("QTY", record.IntValue(9))

		second, _ := b.Load("INVENTORY")
		Expect(second[0].String()).To(Equal("QTY: 1"))
	})

	It("should fail on unknown files", func() {
		_, err := record.NewMemBackend().Load("X")
		Expect(err).To(HaveOccurred())
	})

	It("should record persisted files", func() {
		b := record.NewMemBackend()
		Expect(b.Persist("OUT", []*record.Record{record.FromPairs("A", "1")})).To(Succeed())

		got, ok := b.Persisted("out")
		Expect(ok).To(BeTrue())
		Expect(got).To(HaveLen(1))
	})
})
