package errs

import "fmt"

type Code string

const (
	NoOperation        Code = "NO_OPERATION"
	DaysRequired       Code = "DAYS_REQUIRED"
	ForceRequiredInit  Code = "FORCE_REQUIRED_INIT"
	ScheduleRequired   Code = "SCHEDULE_REQUIRED"
	DryRunWithListOnly Code = "DRY_RUN_WITH_LIST_ONLY"
)

var messages = map[Code]string{
	NoOperation: `Nothing to do: select at least one operation

Usage:
  boxkeep %[1]s --list                 # show the newest archive per name
  boxkeep %[1]s --mkmonthly            # promote daily archives into the monthly tier
  boxkeep %[1]s --expire 14            # delete daily archives older than 14 days

Reason:
  operations can be combined, but at least one is required.`,

	DaysRequired: `Missing threshold: --days or expire_days must be set

Usage:
  boxkeep expire --days 14

Reason:
  expiring without an explicit threshold could delete every retained archive.`,

	ForceRequiredInit: `Configuration already exists at %[1]s

Usage:
  boxkeep init --force       # overwrite it with the defaults

Reason:
  overwriting would discard your current host and directory settings.`,

	ScheduleRequired: `Missing schedule: provide a cron expression

Usage:
  boxkeep schedule --cron "0 3 * * *" --mkmonthly --expire 14

Reason:
  the scheduler repeats a run and needs to know when.`,

	DryRunWithListOnly: `Invalid flag combination: --dry-run has no effect with --list alone

Usage:
  boxkeep run --list
  boxkeep run --mkmonthly --expire 14 --dry-run

Reason:
  listing never changes remote storage.`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
