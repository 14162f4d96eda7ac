package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"github.com/trezcool/academia/apps"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
)

func setup(t *testing.T) (*commandLine, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed, %v", err)
	}

	courseRepo := inmemdb.NewCourseRepository(db)
	studentRepo := inmemdb.NewStudentRepository(db)
	feeRepo := inmemdb.NewFeeRepository(db)
	hostelRepo := inmemdb.NewHostelRepository(db)

	cli := &commandLine{
		courseSvc:  course.NewService(courseRepo),
		studentSvc: student.NewService(studentRepo, courseRepo),
		feeSvc:     fee.NewService(feeRepo, courseRepo, studentRepo, nil),
		hostelSvc:  hostel.NewService(hostelRepo, studentRepo),
	}
	return cli, db
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli, db := setup(t)
	ctx := context.Background()

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "bad count", args: []string{"seed", "-students", "0"}, wantErrStr: "students must be at least 1 (got 0)"},
		{name: "default count", args: []string{"seed"}},
		{name: "custom count", args: []string{"seed", "-students", "5"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		db.Reset()

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if _, ok := err.(*apps.ArgumentError); !ok {
						t.Errorf("cli.run() error = %T, want *apps.ArgumentError", err)
					}
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
				return
			}

			want := 3
			if len(tt.args) > 1 {
				want, _ = strconv.Atoi(tt.args[2])
			}
			students, err := cli.studentSvc.QueryAll(ctx)
			if err != nil {
				t.Fatalf("QueryAll() failed, %v", err)
			}
			if len(students) != want {
				t.Errorf("seeded %d students, want %d", len(students), want)
			}
			courses, err := cli.courseSvc.QueryAll(ctx)
			if err != nil {
				t.Fatalf("QueryAll() failed, %v", err)
			}
			if len(courses) != 2 {
				t.Errorf("seeded %d courses, want 2", len(courses))
			}
			rooms, err := cli.hostelSvc.QueryRooms(ctx)
			if err != nil {
				t.Fatalf("QueryRooms() failed, %v", err)
			}
			if len(rooms) != 3 {
				t.Errorf("seeded %d rooms, want 3", len(rooms))
			}
		})
	}
}
