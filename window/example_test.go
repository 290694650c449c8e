package window_test

import (
	"fmt"
	"strings"

	"github.com/joshuapare/hexkit/internal/testutil/memfile"
	"github.com/joshuapare/hexkit/window"
)

func ExampleReader() {
	// A simulated 40 MiB file read through 16 MiB windows.
	f := memfile.New(40 << 20)
	r := window.New(window.Options{Opener: f.Opener()})
	defer r.Close()

	size, _ := r.Open("forty.bin")
	fmt.Println("size:", size)

	for _, off := range []int64{0, 32 << 20, 0} {
		if _, err := r.ReadRange(off, 128); err != nil {
			fmt.Println("error:", err)
			return
		}
		var spans []string
		for _, w := range r.Snapshot().Windows {
			spans = append(spans, fmt.Sprintf("[%dMiB,%dMiB)", w.Base>>20, w.End()>>20))
		}
		fmt.Println(strings.Join(spans, " "))
	}
	// Output:
	// size: 41943040
	// [0MiB,16MiB) [16MiB,32MiB)
	// [16MiB,32MiB) [32MiB,40MiB)
	// [0MiB,16MiB) [16MiB,32MiB)
}
