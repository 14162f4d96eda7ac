package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/fee"
	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
)

func newDemoStudent(i int, courseID uuid.UUID) student.NewStudent {
	return student.NewStudent{
		Name:     fmt.Sprintf("Demo Student %d", i),
		Email:    fmt.Sprintf("demo%d@academia.test", i),
		CourseID: courseID,
	}
}

// seed loads a small demo data set: two courses with their fee structures,
// n students on the first course, and a hostel with a few rooms.
// It is idempotent only on a fresh database; re-running on seeded data fails
// on the unique course codes.
func (cli *commandLine) seed(n int) error {
	ctx := context.Background()

	cs, err := cli.courseSvc.Create(ctx, course.NewCourse{Name: "BSc Computer Science", Code: "bcs", Semesters: 6})
	if err != nil {
		return errors.Wrap(err, "seeding courses")
	}
	if _, err = cli.courseSvc.Create(ctx, course.NewCourse{Name: "BCom Accounting", Code: "bca", Semesters: 6}); err != nil {
		return errors.Wrap(err, "seeding courses")
	}

	for sem := 1; sem <= 2; sem++ {
		ns := fee.NewStructure{
			CourseID:           cs.ID,
			Semester:           sem,
			TuitionFee:         45000,
			ExaminationFee:     5000,
			RegistrationFee:    2500,
			LibraryFee:         1500,
			ExtraActivitiesFee: 5500,
		}
		if _, err = cli.feeSvc.CreateStructure(ctx, ns); err != nil {
			return errors.Wrap(err, "seeding fee structures")
		}
	}

	for i := 1; i <= n; i++ {
		ns := newDemoStudent(i, cs.ID)
		if _, err = cli.studentSvc.Create(ctx, ns); err != nil {
			return errors.Wrap(err, "seeding students")
		}
	}

	hst, err := cli.hostelSvc.CreateHostel(ctx, hostel.NewHostel{Name: "North Wing"})
	if err != nil {
		return errors.Wrap(err, "seeding hostels")
	}
	for _, nr := range []hostel.NewRoom{
		{HostelID: hst.ID, RoomNumber: "A1", Capacity: 2},
		{HostelID: hst.ID, RoomNumber: "A2", Capacity: 2},
		{HostelID: hst.ID, RoomNumber: "B1", Capacity: 4},
	} {
		if _, err = cli.hostelSvc.AddRoom(ctx, nr); err != nil {
			return errors.Wrap(err, "seeding rooms")
		}
	}

	fmt.Printf("seeded 2 courses, 2 fee structures, %d students, 1 hostel (3 rooms)\n", n)
	return nil
}
