package suite

import "path/filepath"

// Tool names of the external classification toolkit.
const (
	ToolClassify      = "classify"
	ToolDiscretise    = "discretise"
	ToolFeatureSelect = "featureselect"
)

// Dataset file names the built-in suite expects under Paths.DataDir.
// weather.csv is the whole dataset (the tools split it themselves when
// given -f); the -train/-test/-gold files are the pre-split variants for
// the explicit -t/-T/-g invocations.
const (
	datasetFile = "weather.csv"
	trainFile   = "weather-train.csv"
	testFile    = "weather-test.csv"
	goldFile    = "weather-gold.csv"
)

// Paths parameterizes where the built-in suite finds the toolkit binaries
// and the dataset files. Both fields are optional.
type Paths struct {
	// BinDir is joined onto tool names. Empty means resolve via PATH.
	BinDir string

	// DataDir is joined onto dataset file names. Empty means paths are
	// relative to the working directory.
	DataDir string
}

func (p Paths) tool(name string) string {
	if p.BinDir == "" {
		return name
	}
	return filepath.Join(p.BinDir, name)
}

func (p Paths) data(name string) string {
	if p.DataDir == "" {
		return name
	}
	return filepath.Join(p.DataDir, name)
}

// Builtin returns the canonical toolkit smoke suite.
//
// The suite covers the three tools in fixed order: eight classifier checks
// (Zero-R, One-R and Decision Tree, each in test and verify mode, plus the
// two explicit-split Decision Tree runs), six discretiser checks (the
// unsupervised equal-width/equal-frequency binners and the four supervised
// variants), and the three feature-selection strategies (rank-based,
// forward, backward).
//
// The case order and argument vectors are the suite's contract: the same
// Paths always produce the identical invocation sequence. Callers must not
// reorder or mutate the returned cases.
//
// Flag grammar of the external tools: -f names a single dataset the tool
// splits itself; -t/-T/-g name explicit train/test/gold files; -a selects
// the algorithm; -v enables verify mode; -A lists attribute-column indices;
// -o carries algorithm-specific options.
func Builtin(p Paths) Suite {
	classify := p.tool(ToolClassify)
	discretise := p.tool(ToolDiscretise)
	featureselect := p.tool(ToolFeatureSelect)

	dataset := p.data(datasetFile)
	train := p.data(trainFile)
	testset := p.data(testFile)
	gold := p.data(goldFile)

	s := Suite{
		Name:        "toolkit",
		Description: "sanity checks across the classification toolkit's command-line tools",
		Cases: []Case{
			// Classifiers.
			{Label: "Zero R test", Command: classify, Args: []string{"-f", dataset}},
			{Label: "Zero R verify", Command: classify, Args: []string{"-v", "-f", dataset}},
			{Label: "One R test", Command: classify, Args: []string{"-a", "1R", "-f", dataset}},
			{Label: "One R verify", Command: classify, Args: []string{"-a", "1R", "-v", "-f", dataset}},
			{Label: "Decision Tree test", Command: classify, Args: []string{"-a", "DT", "-f", dataset}},
			{Label: "Decision Tree verify", Command: classify, Args: []string{"-a", "DT", "-v", "-f", dataset}},
			{Label: "DT train/test split", Command: classify, Args: []string{"-a", "DT", "-t", train, "-T", testset}},
			{Label: "DT train/gold split", Command: classify, Args: []string{"-a", "DT", "-t", train, "-g", gold}},

			// Discretisers.
			{Label: "Unsupervised Equal Width", Command: discretise, Args: []string{"-a", "UEW", "-f", dataset, "-A", "0,1,2", "-o", "4"}},
			{Label: "Unsupervised Equal Frequency", Command: discretise, Args: []string{"-a", "UEF", "-t", train, "-T", testset, "-A", "1", "-o", "4"}},
			{Label: "Naive supervised", Command: discretise, Args: []string{"-a", "NS", "-t", train, "-T", testset, "-g", gold, "-A", "1"}},
			{Label: "Naive supervised v1", Command: discretise, Args: []string{"-a", "NS1", "-f", dataset, "-A", "0,1,2", "-o", "4"}},
			{Label: "Naive supervised v2", Command: discretise, Args: []string{"-a", "NS2", "-t", train, "-T", testset, "-A", "0,1,2", "-o", "4"}},
			{Label: "Entropy based supervised", Command: discretise, Args: []string{"-a", "ES", "-f", dataset, "-A", "0,1,2", "-o", "4"}},

			// Feature selection.
			{Label: "Rank-based feature select", Command: featureselect, Args: []string{"-a", "RNK", "-f", dataset, "-o", "IG,3"}},
			{Label: "Forward Select", Command: featureselect, Args: []string{"-a", "FS", "-f", dataset, "-o", "1R,3,0.01"}},
			{Label: "Backward Select", Command: featureselect, Args: []string{"-a", "BS", "-f", dataset, "-o", "1R,3,0.01"}},
		},
	}
	s.normalize()
	return s
}
