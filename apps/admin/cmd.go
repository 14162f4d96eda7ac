package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/academia/apps"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sql.DB
	courseSvc  *course.Service
	studentSvc *student.Service
	feeSvc     *fee.Service
	hostelSvc  *hostel.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - manage database migrations (up, down, status, ...)")
	fmt.Println("  seed [-students N]     - load demo courses, students, fee structures and hostels")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedStudents := seedCmd.Int("students", 3, "The number of demo students to create.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedStudents < 1 {
			return apps.NewArgumentError(fmt.Sprintf("students must be at least 1 (got %d)", *seedStudents))
		}
		return cli.seed(*seedStudents)
	default:
		cli.printUsage()
		return errHelp
	}
}
