// texconv - texture container inspection and preview tool for teximp.
//
// Decodes BMP, DDS, KTX and TGA textures through the teximp importer core
// and either reports their metadata, renders a lossless PNG preview of the
// base surface, or packs/unpacks a batch of source files into a zstd
// bundle for pipeline hand-off.
//
// Usage:
//
//	texconv info input.{bmp,dds,ktx,tga}
//	texconv decode input.{bmp,dds,ktx,tga} output.png
//	texconv bundle create output.bndl file1 file2 ...
//	texconv bundle list input.bndl
//	texconv bundle extract input.bndl output_dir
package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/goopsie/teximp"
	"github.com/goopsie/teximp/bundle"
	"github.com/goopsie/teximp/memtex"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: texconv info <input>")
			os.Exit(1)
		}
		err = showInfo(os.Args[2])

	case "decode":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, "Usage: texconv decode <input> <output.png>")
			os.Exit(1)
		}
		err = decodePreview(os.Args[2], os.Args[3])

	case "bundle":
		err = runBundle(os.Args[2:])

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("texconv - texture container inspection and preview tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  texconv info <input>                        # Show texture metadata")
	fmt.Println("  texconv decode <input> <output.png>         # Decode base surface to PNG")
	fmt.Println("  texconv bundle create <out.bndl> <files...> # Pack files into a bundle")
	fmt.Println("  texconv bundle list <in.bndl>                # List bundle entries")
	fmt.Println("  texconv bundle extract <in.bndl> <dir>       # Extract bundle entries")
}

func importFile(path string) (*memtex.Texture, teximp.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, teximp.Result{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	alloc := memtex.New()
	result := teximp.ImportTexture(path, f, alloc, teximp.Options{})
	if result.Status != teximp.StatusSuccess {
		return nil, result, fmt.Errorf("%s: %s", result.ErrorKind, result.ErrorMessage)
	}
	if len(alloc.Textures) == 0 {
		return nil, result, fmt.Errorf("decoder reported success but allocated nothing")
	}
	return alloc.Textures[0], result, nil
}

func showInfo(path string) error {
	tex, result, err := importFile(path)
	if err != nil {
		return err
	}

	fi := pixfmt.Info(tex.Format)
	p := tex.Params
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Container: %s\n", result.FileFormat)
	fmt.Printf("Dimension: %s\n", p.Dimension)
	fmt.Printf("Extent: %dx%dx%d\n", p.Extent.Width, p.Extent.Height, p.Extent.Depth)
	fmt.Printf("Array size: %d\n", p.ArraySize)
	fmt.Printf("Faces: %d\n", p.Faces)
	fmt.Printf("Mip levels: %d\n", p.Mips)
	fmt.Printf("Format: %s\n", fi.Name)
	fmt.Printf("Block size: %d bytes (%dx%d)\n", fi.BlockByteSize, fi.Block.X, fi.Block.Y)
	return nil
}

func decodePreview(inputPath, outputPath string) error {
	tex, _, err := importFile(inputPath)
	if err != nil {
		return err
	}

	key := texture.MipSurfaceKey{ArraySlice: 0, Face: 0, Mip: 0}
	data := tex.Surface(key)
	if data == nil {
		return fmt.Errorf("base surface was never allocated")
	}

	fi := pixfmt.Info(tex.Format)
	width, height := int(tex.Params.Extent.Width), int(tex.Params.Extent.Height)
	img, err := surfaceToRGBA(data, width, height, fi)
	if err != nil {
		return fmt.Errorf("expand surface: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func runBundle(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: texconv bundle <create|list|extract> ...")
	}
	switch args[0] {
	case "create":
		if len(args) < 3 {
			return fmt.Errorf("usage: texconv bundle create <out.bndl> <files...>")
		}
		return bundleCreate(args[1], args[2:])
	case "list":
		if len(args) != 2 {
			return fmt.Errorf("usage: texconv bundle list <in.bndl>")
		}
		return bundleList(args[1])
	case "extract":
		if len(args) != 3 {
			return fmt.Errorf("usage: texconv bundle extract <in.bndl> <dir>")
		}
		return bundleExtract(args[1], args[2])
	default:
		return fmt.Errorf("unknown bundle subcommand: %s", args[0])
	}
}

func bundleCreate(outputPath string, inputs []string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}
	defer out.Close()

	w := bundle.NewWriter(out)
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := w.Add(filepath.Base(path), data); err != nil {
			return fmt.Errorf("add %s: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize bundle: %w", err)
	}
	fmt.Printf("Wrote %d entries to %s\n", len(inputs), outputPath)
	return nil
}

func bundleList(inputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	r, err := bundle.Open(f)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}
	for _, name := range r.Names() {
		fmt.Println(name)
	}
	return nil
}

func bundleExtract(inputPath, outputDir string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	r, err := bundle.Open(f)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, name := range r.Names() {
		data, err := r.Entry(name)
		if err != nil {
			return fmt.Errorf("read entry %s: %w", name, err)
		}
		dst := filepath.Join(outputDir, name)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
	}
	fmt.Printf("Extracted %d entries to %s\n", len(r.Names()), outputDir)
	return nil
}
