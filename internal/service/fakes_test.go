package service

import (
	"context"
	"fmt"
	"time"

	"courseapp/internal/model"
)

// in-memory repository fakes shared by the service tests

type fakeCourseRepo struct {
	seq     int
	courses map[string]*model.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[string]*model.Course{}}
}

func (f *fakeCourseRepo) CreateCourse(_ context.Context, c *model.Course) error {
	f.seq++
	c.ID = fmt.Sprintf("course-%d", f.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	f.courses[c.ID] = &stored
	return nil
}

func (f *fakeCourseRepo) GetOwnedCourse(_ context.Context, courseID, creatorID string) (*model.Course, error) {
	c, ok := f.courses[courseID]
	if !ok || c.CreatorID != creatorID {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourseRepo) GetCourseByID(_ context.Context, courseID string) (*model.Course, error) {
	c, ok := f.courses[courseID]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourseRepo) UpdateOwnedCourse(_ context.Context, c *model.Course) (bool, error) {
	existing, ok := f.courses[c.ID]
	if !ok || existing.CreatorID != c.CreatorID {
		return false, nil
	}
	updated := *c
	updated.UpdatedAt = time.Now()
	f.courses[c.ID] = &updated
	return true, nil
}

func (f *fakeCourseRepo) DeleteOwnedCourse(_ context.Context, courseID, creatorID string) (bool, error) {
	c, ok := f.courses[courseID]
	if !ok || c.CreatorID != creatorID {
		return false, nil
	}
	delete(f.courses, courseID)
	return true, nil
}

func (f *fakeCourseRepo) GetCoursesByCreatorID(_ context.Context, creatorID string) ([]model.Course, error) {
	out := []model.Course{}
	for _, c := range f.courses {
		if c.CreatorID == creatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) GetAllCourses(_ context.Context) ([]model.Course, error) {
	out := []model.Course{}
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, nil
}

type fakeAssetService struct {
	seq      int
	stored   []string
	removed  []string
	storeErr error
	removeErr error
}

func (f *fakeAssetService) Store(_ context.Context, att *Attachment) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.seq++
	url := fmt.Sprintf("https://assets.test/catalog/courses/img-%d.png", f.seq)
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeAssetService) Remove(_ context.Context, imageURL string) error {
	f.removed = append(f.removed, imageURL)
	return f.removeErr
}

type fakePurchaseRepo struct {
	seq       int
	purchases map[string]*model.Purchase
	courses   *fakeCourseRepo
	createErr error
}

func newFakePurchaseRepo(courses *fakeCourseRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: map[string]*model.Purchase{}, courses: courses}
}

func pairKey(userID, courseID string) string {
	return userID + "|" + courseID
}

func (f *fakePurchaseRepo) CreatePurchase(_ context.Context, p *model.Purchase) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	p.ID = fmt.Sprintf("purchase-%d", f.seq)
	p.CreatedAt = time.Now()
	stored := *p
	f.purchases[pairKey(p.UserID, p.CourseID)] = &stored
	return nil
}

func (f *fakePurchaseRepo) GetPurchase(_ context.Context, userID, courseID string) (*model.Purchase, error) {
	p, ok := f.purchases[pairKey(userID, courseID)]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePurchaseRepo) GetPurchasesByUserID(_ context.Context, userID string) ([]model.PurchaseWithCourse, error) {
	out := []model.PurchaseWithCourse{}
	for _, p := range f.purchases {
		if p.UserID != userID {
			continue
		}
		pc := model.PurchaseWithCourse{Purchase: *p}
		if c, ok := f.courses.courses[p.CourseID]; ok {
			pc.Course = *c
		}
		out = append(out, pc)
	}
	return out, nil
}

type fakePublisher struct {
	topics     []string
	payloads   [][]byte
	publishErr error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	if f.publishErr != nil {
		return "", f.publishErr
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return fmt.Sprintf("msg-%d", len(f.topics)), nil
}
