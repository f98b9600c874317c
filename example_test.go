package symnmf_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hupe1980/symnmf"
	"github.com/hupe1980/symnmf/dataset"
	"github.com/hupe1980/symnmf/report"
)

func ExampleAnalyzer_Compare() {
	ds, err := dataset.Parse(strings.NewReader("0,0\n0,1\n10,10\n10,11\n"))
	if err != nil {
		log.Fatal(err)
	}

	a := symnmf.New()
	r, err := a.Compare(context.Background(), ds, 2)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(r.NMF.Labels[0] == r.NMF.Labels[1], r.NMF.Labels[2] == r.NMF.Labels[3])
	fmt.Println(r.KMeans.Labels)
	// Output:
	// true true
	// [0 0 1 1]
}

func ExampleAnalyzer_KMeans() {
	ds, err := dataset.Parse(strings.NewReader("0,0\n0,1\n10,10\n10,11\n"))
	if err != nil {
		log.Fatal(err)
	}

	res, err := symnmf.New().KMeans(context.Background(), ds, 2, 300)
	if err != nil {
		log.Fatal(err)
	}

	if err := report.WriteCentroids(os.Stdout, res.Centroids); err != nil {
		log.Fatal(err)
	}
	// Output:
	// 0.0000,0.5000
	// 10.0000,10.5000
}

func ExampleAnalyzer_Matrix() {
	ds, err := dataset.Parse(strings.NewReader("0,0\n0,1\n10,10\n10,11\n"))
	if err != nil {
		log.Fatal(err)
	}

	m, err := symnmf.New().Matrix(context.Background(), ds, 2, symnmf.GoalSym)
	if err != nil {
		log.Fatal(err)
	}

	if err := report.WriteMatrix(os.Stdout, m); err != nil {
		log.Fatal(err)
	}
	// Output:
	// 0.0000,0.6065,0.0000,0.0000
	// 0.6065,0.0000,0.0000,0.0000
	// 0.0000,0.0000,0.0000,0.6065
	// 0.0000,0.0000,0.6065,0.0000
}

func ExampleParseGoal() {
	g, err := symnmf.ParseGoal("norm")
	fmt.Println(g, err)

	_, err = symnmf.ParseGoal("NORM")
	fmt.Println(err != nil)
	// Output:
	// norm <nil>
	// true
}
