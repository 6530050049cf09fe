// Command repair renders a raw model answer read from stdin (or a file) to canonical markdown.
// Useful for replaying answers captured in the exchange log.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/pipeline"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/render"
)

func main() {
	prefix := flag.String("prefix", "##", "section heading prefix")
	flag.Parse()

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		log.Fatalf("Error: read input: %v", err)
	}

	md, fallback, err := pipeline.ToMarkdown(string(raw), render.WithSectionPrefix(*prefix))
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if fallback {
		log.Println("Warn: answer did not decode, printing normalized raw text")
	}
	fmt.Print(md)
}
