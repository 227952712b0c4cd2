package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Salary is the only income; dependents and spouse deductions are not applied",
	"Social insurance premiums estimated at 15% of gross salary",
	"Resident tax is the flat 10% income levy; the per-capita levy is excluded",
	"Reconstruction special income tax (2.1%) is not included",
	"Every step is truncated to whole yen",
	"Housing loan credit left over after income tax reduces resident tax up to 7% of taxable income (max ¥136,500)",
}
