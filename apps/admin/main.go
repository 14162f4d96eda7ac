package main

import (
	"log"
	"os"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
	"github.com/trezcool/academia/storage/database"
	sqlxrepos "github.com/trezcool/academia/storage/database/sqlx"
)

var logger *log.Logger // todo: logger service

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	errAndDie(database.CreateIfNotExist(core.Conf))
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	courseRepo := sqlxrepos.NewCourseRepository(db)
	studentRepo := sqlxrepos.NewStudentRepository(db)
	feeRepo := sqlxrepos.NewFeeRepository(db)
	hostelRepo := sqlxrepos.NewHostelRepository(db)

	// start CLI
	cli := commandLine{
		db:         db,
		courseSvc:  course.NewService(courseRepo),
		studentSvc: student.NewService(studentRepo, courseRepo),
		feeSvc:     fee.NewService(feeRepo, courseRepo, studentRepo, nil /* mailSvc */),
		hostelSvc:  hostel.NewService(hostelRepo, studentRepo),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
