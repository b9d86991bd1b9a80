/*
Package fkpoints is a data loading and preprocessing library for facial keypoint
image datasets. It parses a CSV annotation table mapping image files to 68 facial
landmark coordinates, loads the referenced images on demand and runs them through
an ordered chain of geometry aware transforms (rescale, crop, grayscale
normalization, tensor conversion) which keep the keypoint coordinates aligned
with the pixel data at every stage.

The package provides a command line interface for exporting annotated samples.
To check the supported commands type:

	$ fkpoints --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		fkpoints "github.com/gabfec/CV-Facial-Keypoints"
	)

	func main() {
		ds, err := fkpoints.NewDataset("training_frames_keypoints.csv", "training",
			fkpoints.NewRescale(250),
			fkpoints.NewRandomCrop(224),
		)
		if err != nil {
			fmt.Printf("Error loading the dataset: %s", err.Error())
			return
		}

		sample, err := ds.Sample(0)
		if err != nil {
			fmt.Printf("Error reading the sample: %s", err.Error())
			return
		}
		fmt.Println(len(sample.Points))
	}
*/
package fkpoints
