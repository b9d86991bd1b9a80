package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	fkpoints "github.com/gabfec/CV-Facial-Keypoints"
	"github.com/gabfec/CV-Facial-Keypoints/utils"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┬┌─┌─┐┌─┐┬┌┐┌┌┬┐┌─┐
├┤ ├┴┐├─┘│ │││││ │ └─┐
└  ┴ ┴┴  └─┘┴┘└┘ ┴ └─┘

Facial keypoints dataset toolbox.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// markerColor is the color used to render the keypoint markers.
var markerColor = color.NRGBA{R: 0xff, G: 0x00, B: 0xcc, A: 0xff}

// Version indicates the current build version.
var Version string

var (
	// Flags
	csvPath   = flag.String("csv", "", "Annotation CSV file")
	imgDir    = flag.String("dir", "", "Image directory")
	index     = flag.Int("index", -1, "Sample index to export (-1 exports the whole dataset)")
	output    = flag.String("out", pipeName, "Destination file or directory")
	size      = flag.Int("size", 0, "Rescale target, longer edge")
	crop      = flag.Int("crop", 0, "Random crop window size")
	seed      = flag.Int64("seed", 0, "Crop seed (0 draws a random offset)")
	gray      = flag.Bool("gray", false, "Normalize to grayscale before export")
	cascade   = flag.String("cc", "", "Cascade classifier used for face cropping")
	margin    = flag.Float64("margin", 0.2, "Face crop margin")
	marker    = flag.String("marker", "circle", "Keypoint marker shape (circle|cross)")
	radius    = flag.Int("radius", 2, "Keypoint marker radius")
	workers   = flag.Int("conc", runtime.NumCPU(), "Number of samples to export concurrently")
	showStats = flag.Bool("stats", false, "Print the keypoint statistics of the table and exit")
)

// result holds the relevant information about one exported sample.
type result struct {
	path string
	err  error
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *csvPath == "" {
		log.Fatal(utils.DecorateText("Please specify the annotation CSV file with the -csv flag!", utils.ErrorMessage))
	}

	if *showStats {
		printStats(*csvPath)
		return
	}

	if *imgDir == "" {
		log.Fatal(utils.DecorateText("Please specify the image directory with the -dir flag!", utils.ErrorMessage))
	}

	chain, err := buildChain()
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to set up the transform chain: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	ds, err := fkpoints.NewDataset(*csvPath, *imgDir, chain...)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the dataset: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	now := time.Now()
	if *index >= 0 {
		exportOne(ds, *index, *output)
	} else {
		exportAll(ds, *output)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// buildChain assembles the geometric transform chain from the provided flags.
// The face crop runs first so that the rescale target applies to the face
// region, then the rescale and the random crop.
func buildChain() ([]fkpoints.Transform, error) {
	var chain []fkpoints.Transform

	if *cascade != "" {
		fc, err := fkpoints.NewFaceCrop(*cascade, *margin)
		if err != nil {
			return nil, err
		}
		chain = append(chain, fc)
	}
	if *size > 0 {
		chain = append(chain, fkpoints.NewRescale(*size))
	}
	if *crop > 0 {
		rc := fkpoints.NewRandomCrop(*crop)
		if *seed != 0 {
			rc.Seed(*seed)
		}
		chain = append(chain, rc)
	}
	return chain, nil
}

// exportOne renders a single annotated sample to a file or to the stdout pipe.
func exportOne(ds *fkpoints.Dataset, idx int, out string) {
	spinner := newSpinner()
	spinner.Start()

	img, err := renderSample(ds, idx)
	if err != nil {
		spinner.Stop()
		printOpStatus(out, err)
		return
	}

	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			spinner.Stop()
			printOpStatus(out, errors.New("`-` should be used with a pipe for stdout"))
			return
		}
		err = fkpoints.EncodeImg(os.Stdout, img)
	} else {
		err = writeImage(out, img)
	}
	spinner.Stop()
	printOpStatus(out, err)
}

// exportAll renders every annotated sample of the dataset into the output
// directory, distributing the work across a bounded pool of workers.
func exportAll(ds *fkpoints.Dataset, outDir string) {
	if outDir == pipeName {
		log.Fatal(utils.DecorateText("Please specify an output directory with the -out flag when exporting the whole dataset!", utils.ErrorMessage))
	}
	if _, err := os.Stat(outDir); err != nil {
		if err := os.Mkdir(outDir, 0755); err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to create the output directory: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	conc := *workers
	if conc <= 0 || conc > maxWorkers {
		conc = runtime.NumCPU()
	}

	spinner := newSpinner()
	spinner.Start()

	jobs := make(chan int)
	res := make(chan result)

	var wg sync.WaitGroup
	wg.Add(conc)
	for i := 0; i < conc; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				name := filepath.Base(ds.Table().Record(idx).Image)
				dst := filepath.Join(outDir, name)

				img, err := renderSample(ds, idx)
				if err == nil {
					err = writeImage(dst, img)
				}
				res <- result{path: dst, err: err}
			}
		}()
	}

	go func() {
		for i := 0; i < ds.Len(); i++ {
			jobs <- i
		}
		close(jobs)
	}()

	// Close the channel after the values are consumed.
	go func() {
		defer close(res)
		wg.Wait()
	}()

	var failed int
	for r := range res {
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "\n%s %s\n",
				utils.DecorateText(fmt.Sprintf("Error exporting %s:", r.path), utils.ErrorMessage),
				utils.DecorateText(r.err.Error(), utils.DefaultMessage),
			)
		}
	}
	spinner.Stop()

	fmt.Fprintf(os.Stderr, "\nExported %s samples into: %s\n",
		utils.DecorateText(fmt.Sprintf("%d", ds.Len()-failed), utils.SuccessMessage),
		utils.DecorateText(outDir, utils.SuccessMessage),
	)
}

// renderSample loads the idx-th sample and renders its keypoints as markers.
// With the -gray flag the sample is normalized first and the markers are
// drawn at the denormalized keypoint positions over the grayscale pixels.
func renderSample(ds *fkpoints.Dataset, idx int) (*image.NRGBA, error) {
	s, err := ds.Sample(idx)
	if err != nil {
		return nil, err
	}

	points := s.Points
	img := s.Img

	if *gray {
		ns, err := (fkpoints.Normalize{}).Apply(s)
		if err != nil {
			return nil, err
		}
		img = grayToImage(ns.Data)

		points = make([]fkpoints.Point, len(ns.Points))
		for i, p := range ns.Points {
			points[i] = fkpoints.Point{
				X: p.X*fkpoints.KeypointScale + fkpoints.KeypointMean,
				Y: p.Y*fkpoints.KeypointScale + fkpoints.KeypointMean,
			}
		}
	}

	return fkpoints.DrawKeypoints(img, points, fkpoints.ShapeType(*marker), *radius, markerColor), nil
}

// grayToImage maps a single channel [0,1] tensor back to 8 bit pixels.
func grayToImage(t *fkpoints.Tensor) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			v := t.At(0, y, x)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			g := uint8(v * 255)
			img.SetNRGBA(x, y, color.NRGBA{R: g, G: g, B: g, A: 0xff})
		}
	}
	return img
}

// writeImage encodes the image into the destination file, picking the
// encoder by the file extension.
func writeImage(dst string, img *image.NRGBA) error {
	file, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer file.Close()

	return fkpoints.EncodeImg(file, img)
}

// printStats loads the annotation table and prints its keypoint statistics.
func printStats(path string) {
	table, err := fkpoints.LoadAnnotations(path)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the annotation table: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	st := fkpoints.TableStats(table)
	fmt.Printf("records: %d\n", table.Len())
	fmt.Printf("x: mean %.2f stddev %.2f\n", st.MeanX, st.StdX)
	fmt.Printf("y: mean %.2f stddev %.2f\n", st.MeanY, st.StdY)
	fmt.Printf("pooled: mean %.2f stddev %.2f\n", st.Mean, st.Std)
}

func newSpinner() *utils.Spinner {
	msg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FKPOINTS", utils.StatusMessage),
		utils.DecorateText("⇢ exporting annotated samples...", utils.DefaultMessage),
	)
	return utils.NewSpinner(msg, time.Millisecond*80)
}

// printOpStatus displays the relevant information about the export process.
func printOpStatus(fname string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError exporting the sample: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}
