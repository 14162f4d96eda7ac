package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/student"
	testutil "github.com/trezcool/academia/tests"
)

func Test_studentApi_register(t *testing.T) {
	resetDB()
	crs := testutil.CreateCourse(t, courseRepo, "BSc Computer Science", "bcs", 6)
	testutil.CreateStudent(t, studentRepo, "Hero", "ACA0001", "hero@test.cd", crs.ID)

	tests := []httpTest{
		{
			name: "missing fields", body: marchallObj(t, student.NewStudent{Name: "King"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"course_id": "this field is required"}),
		},
		{
			name: "bad email", body: marchallObj(t, student.NewStudent{Name: "King", Email: "lol", CourseID: crs.ID}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name: "unknown course", body: marchallObj(t, student.NewStudent{Name: "King", CourseID: uuid.New()}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"course_id": "course not found"}),
		},
		{
			name: "duplicate reg no", body: marchallObj(t, student.NewStudent{Name: "King", RegNo: "aca0001", CourseID: crs.ID}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"reg_no": "a student with this registration number already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/students/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("reg no is generated when omitted", func(t *testing.T) {
		req, rec := newRequest(
			http.MethodPost, "/v1/students/register",
			marchallObj(t, student.NewStudent{Name: "King", Email: "king@test.cd", CourseID: crs.ID}),
		)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var stu student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &stu); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}
		if !strings.HasPrefix(stu.RegNo, "ACA") || len(stu.RegNo) != 11 {
			t.Errorf("RegNo = %q; want generated ACAXXXXXXXX", stu.RegNo)
		}
		if !stu.IsRegistered {
			t.Error("IsRegistered = false; want true")
		}
		if stu.HostelInfo != nil {
			t.Errorf("HostelInfo = %+v; want nil on registration", stu.HostelInfo)
		}
	})
}

func Test_studentApi_retrieve(t *testing.T) {
	resetDB()
	crs := testutil.CreateCourse(t, courseRepo, "BSc Computer Science", "bcs", 6)
	stu := testutil.CreateStudent(t, studentRepo, "Hero", "ACA0001", "hero@test.cd", crs.ID)

	tests := []httpTest{
		{name: "ok", path: "/v1/students/" + stu.ID.String(), wantCode: http.StatusOK, wantData: marchallObj(t, stu)},
		{
			name: "unknown id", path: "/v1/students/" + uuid.New().String(),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
