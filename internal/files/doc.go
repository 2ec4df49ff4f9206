// Package files discovers punch tables on disk.
//
// Discovery expands the inputs given on the command line: a directory
// contributes every .csv and .xlsx file directly inside it, sorted by name,
// and a file is taken as given. Each file becomes one dataset whose name is
// derived from the file name.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	inputs, err := discovery.Resolve([]string{"exports/", "extra.csv"})
//	names := files.DatasetNames(inputs)
package files
