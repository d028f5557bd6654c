// Package sheet reads behavior event sheets from an input directory.
//
// Sheets are .xlsx workbooks (first worksheet) or .csv files whose header row
// names the columns "Observation id", "Behavior" and "Duration (s)". Other
// columns are ignored, so full scoring exports can be read unchanged.
package sheet
