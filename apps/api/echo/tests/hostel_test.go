package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/hostel"
	"github.com/trezcool/academia/core/student"
	testutil "github.com/trezcool/academia/tests"
)

func bookRoom(t *testing.T, studentID, roomID uuid.UUID) *httptest.ResponseRecorder {
	body := marchallObj(t, hostel.NewBooking{StudentID: studentID, RoomID: roomID})
	req, rec := newRequest(http.MethodPost, "/v1/bookings", body)
	app.ServeHTTP(rec, req)
	return rec
}

func getStudent(t *testing.T, id uuid.UUID) student.Student {
	req, rec := newRequest(http.MethodGet, "/v1/students/"+id.String())
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET student code = %v; body %s", rec.Code, rec.Body.String())
	}
	var stu student.Student
	if err := json.Unmarshal(rec.Body.Bytes(), &stu); err != nil {
		t.Fatalf("json.Unmarshal() failed, %v", err)
	}
	return stu
}

func availableRooms(t *testing.T) []hostel.RoomOccupancy {
	req, rec := newRequest(http.MethodGet, "/v1/rooms?available=true")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET rooms code = %v; body %s", rec.Code, rec.Body.String())
	}
	var rooms []hostel.RoomOccupancy
	if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("json.Unmarshal() failed, %v", err)
	}
	return rooms
}

func Test_hostelApi_addRoom(t *testing.T) {
	resetDB()
	hst := testutil.CreateHostel(t, hostelRepo, "North Wing")

	tests := []httpTest{
		{
			name: "unknown hostel", path: "/v1/hostels/" + uuid.New().String() + "/rooms",
			body:     marchallObj(t, hostel.NewRoom{RoomNumber: "A1", Capacity: 2}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"hostel_id": "hostel not found"}),
		},
		{
			name: "missing capacity", path: "/v1/hostels/" + hst.ID.String() + "/rooms",
			body:     marchallObj(t, hostel.NewRoom{RoomNumber: "A1"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"capacity": "this field is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(
			http.MethodPost, "/v1/hostels/"+hst.ID.String()+"/rooms",
			marchallObj(t, hostel.NewRoom{RoomNumber: "A1", Capacity: 2}),
		)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var rm hostel.Room
		if err := json.Unmarshal(rec.Body.Bytes(), &rm); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}
		if rm.HostelID != hst.ID {
			t.Errorf("HostelID = %v; want %v", rm.HostelID, hst.ID)
		}
	})
}

func Test_hostelApi_bookingFlow(t *testing.T) {
	resetDB()
	crs := testutil.CreateCourse(t, courseRepo, "BSc Computer Science", "bcs", 6)
	stu1 := testutil.CreateStudent(t, studentRepo, "Hero", "ACA0001", "hero@test.cd", crs.ID)
	stu2 := testutil.CreateStudent(t, studentRepo, "King", "ACA0002", "king@test.cd", crs.ID)
	stu3 := testutil.CreateStudent(t, studentRepo, "Awe", "ACA0003", "awe@test.cd", crs.ID)
	hst := testutil.CreateHostel(t, hostelRepo, "North Wing")
	rm := testutil.CreateRoom(t, hostelRepo, hst.ID, "A1", 2)

	// first booking fills the student's hostel snapshot
	rec := bookRoom(t, stu1.ID, rm.ID)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Booking *hostel.Booking `json:"booking"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() failed, %v", err)
	}
	if !resp.Success || resp.Booking == nil {
		t.Fatalf("booking response = %s", rec.Body.String())
	}
	if stu := getStudent(t, stu1.ID); stu.HostelInfo == nil || stu.HostelInfo.RoomID != rm.ID {
		t.Errorf("hostel snapshot = %+v; want room %v", stu.HostelInfo, rm.ID)
	}

	// one room per student
	rec = bookRoom(t, stu1.ID, rm.ID)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusConflict,
		wantData: marchallObj(t, map[string]interface{}{"success": false, "message": "student already has a room booked"}),
	}, rec)

	// fill the room
	if rec = bookRoom(t, stu2.ID, rm.ID); rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	if rooms := availableRooms(t); len(rooms) != 0 {
		t.Errorf("available rooms = %d; want 0", len(rooms))
	}

	// full room rejects further bookings and mutates nothing
	rec = bookRoom(t, stu3.ID, rm.ID)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusConflict,
		wantData: marchallObj(t, map[string]interface{}{"success": false, "message": "room is already at full capacity"}),
	}, rec)
	if stu := getStudent(t, stu3.ID); stu.HostelInfo != nil {
		t.Errorf("rejected booking filled the hostel snapshot: %+v", stu.HostelInfo)
	}

	req, recList := newRequest(http.MethodGet, "/v1/bookings")
	app.ServeHTTP(recList, req)
	var bookings []hostel.Booking
	if err := json.Unmarshal(recList.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("json.Unmarshal() failed, %v", err)
	}
	if len(bookings) != 2 {
		t.Errorf("bookings = %d; want 2", len(bookings))
	}

	// cancelling frees the slot and clears the snapshot
	req, rec = newRequest(http.MethodDelete, "/v1/bookings/"+stu1.ID.String())
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE booking code = %v; body %s", rec.Code, rec.Body.String())
	}
	if stu := getStudent(t, stu1.ID); stu.HostelInfo != nil {
		t.Errorf("cancelled booking left the hostel snapshot: %+v", stu.HostelInfo)
	}
	if rooms := availableRooms(t); len(rooms) != 1 {
		t.Errorf("available rooms = %d; want 1", len(rooms))
	}
	if rec = bookRoom(t, stu3.ID, rm.ID); rec.Code != http.StatusCreated {
		t.Errorf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
}

func Test_hostelApi_cancelErrors(t *testing.T) {
	resetDB()

	tests := []httpTest{
		{
			name: "bad id", path: "/v1/bookings/lol",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid id"}),
		},
		{
			name: "no booking", path: "/v1/bookings/" + uuid.New().String(),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "booking not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodDelete, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
