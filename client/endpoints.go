package client

import "fmt"

// Backend paths. Each resource has exactly one spelling; a mismatch with the
// backend surfaces as ErrNotFound instead of being guessed around.
const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathCurrent  = "/auth/current"

	PathFacilities      = "/facilities"
	PathBookings        = "/bookings"
	PathCourses         = "/courses"
	PathTeachers        = "/teachers"
	PathCafeteriaItems  = "/cafeteria/items"
	PathCafeteriaOrders = "/cafeteria/orders"
	PathExams           = "/exams"
	PathResources       = "/resources"
	PathAttendance      = "/attendance"
	PathEvents          = "/events"
	PathLostFound       = "/lost-found"
	PathAdminMetrics    = "/admin/metrics"
)

// Item joins a collection path and an id.
func Item(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}

func FacilityBookingsPath(facilityID int) string {
	return Item(PathFacilities, facilityID) + "/bookings"
}

func CourseTeacherPath(courseID, teacherID int) string {
	return fmt.Sprintf("%s/%d/teachers/%d", PathCourses, courseID, teacherID)
}

func OrderStatusPath(orderID int) string {
	return Item(PathCafeteriaOrders, orderID) + "/status"
}

func ExamQuestionPaperPath(examID int) string {
	return Item(PathExams, examID) + "/question-paper"
}

func ResourceDownloadPath(resourceID int) string {
	return Item(PathResources, resourceID) + "/download"
}

func EventRSVPPath(eventID int) string {
	return Item(PathEvents, eventID) + "/rsvp"
}

func LostItemStatusPath(itemID int) string {
	return Item(PathLostFound, itemID) + "/status"
}
