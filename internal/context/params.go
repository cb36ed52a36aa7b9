package context

import "github.com/Knodis-c/erdtree-3-1/internal/grammar"

// Parameter identifiers, in canonical hyphenated spelling.
const (
	idDiskUsage    = "disk-usage"
	idHidden       = "hidden"
	idNoGit        = "no-git"
	idNoIgnore     = "no-ignore"
	idFollow       = "follow"
	idIcons        = "icons"
	idLevel        = "level"
	idLong         = "long"
	idPattern      = "pattern"
	idGlob         = "glob"
	idIGlob        = "iglob"
	idPrune        = "prune"
	idScale        = "scale"
	idReport       = "report"
	idHuman        = "human"
	idFileName     = "file-name"
	idSort         = "sort"
	idDirsFirst    = "dirs-first"
	idThreads      = "threads"
	idUnit         = "unit"
	idDirsOnly     = "dirs-only"
	idNoColor      = "no-color"
	idNoConfig     = "no-config"
	idSuppressSize = "suppress-size"
	idVerbose      = "verbose"
)

var params = []grammar.Param{
	{Name: idDiskUsage, Short: "d", Kind: grammar.String, Default: "logical",
		Choices: []string{"logical", "physical"},
		Usage:   "print physical or logical file size"},
	{Name: idHidden, Short: ".", Kind: grammar.Bool,
		Usage: "show hidden files"},
	{Name: idNoGit, Kind: grammar.Bool, Requires: idHidden,
		Usage: "disable traversal of .git directory when traversing hidden files"},
	{Name: idNoIgnore, Short: "i", Kind: grammar.Bool,
		Usage: "do not respect .gitignore files"},
	{Name: idFollow, Short: "f", Kind: grammar.Bool,
		Usage: "follow symlinks and consider their disk usage"},
	{Name: idIcons, Short: "I", Kind: grammar.Bool,
		Usage: "display file icons"},
	{Name: idLevel, Short: "L", Kind: grammar.Int, Default: "-1",
		Usage: "maximum depth to display"},
	{Name: idLong, Short: "l", Kind: grammar.Bool,
		Usage: "show extended metadata and attributes"},
	{Name: idPattern, Short: "p", Kind: grammar.String,
		Usage: "regular expression (or glob if --glob or --iglob is used) used to match files"},
	{Name: idGlob, Kind: grammar.Bool, Requires: idPattern,
		Usage: "enables glob based searching"},
	{Name: idIGlob, Kind: grammar.Bool, Requires: idPattern,
		Usage: "enables case-insensitive glob based searching"},
	{Name: idPrune, Short: "P", Kind: grammar.Bool,
		Usage: "remove empty directories from output"},
	{Name: idScale, Short: "n", Kind: grammar.Int, Default: "2",
		Usage: "total number of digits after the decimal to display for disk usage"},
	{Name: idReport, Short: "r", Kind: grammar.Bool,
		Usage: "print disk usage information in plain format without ASCII tree"},
	{Name: idHuman, Kind: grammar.Bool, Requires: idReport,
		Usage: "print human-readable disk usage in report"},
	{Name: idFileName, Kind: grammar.Bool, Requires: idReport,
		Usage: "print file-name in report as opposed to full path"},
	{Name: idSort, Short: "s", Kind: grammar.String, Default: "size",
		Choices: []string{"name", "size", "size-rev"},
		Usage:   "sort-order to display directory content"},
	{Name: idDirsFirst, Kind: grammar.Bool,
		Usage: "sort directories above files"},
	{Name: idThreads, Short: "t", Kind: grammar.Int, Default: "3",
		Usage: "number of threads to use"},
	{Name: idUnit, Short: "u", Kind: grammar.String, Default: "bin",
		Choices: []string{"bin", "si"},
		Usage:   "report disk usage in binary or SI units"},
	{Name: idDirsOnly, Kind: grammar.Bool,
		Usage: "only print directories"},
	{Name: idNoColor, Kind: grammar.Bool,
		Usage: "print plainly without ANSI escapes"},
	{Name: idNoConfig, Kind: grammar.Bool,
		Usage: "don't read configuration file"},
	{Name: idSuppressSize, Kind: grammar.Bool,
		Usage: "omit disk usage from output"},
	{Name: idVerbose, Short: "v", Kind: grammar.Count,
		Usage: "verbose logging (can be repeated)"},
}

// Grammar returns the declared parameter grammar for erdtree. The inventory
// is static, so a declaration failure is a programming error.
func Grammar() *grammar.Grammar {
	g, err := grammar.New(params)
	if err != nil {
		panic(err)
	}

	return g
}
