package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
)

type campaignFixture struct {
	campaigns   *mockCampaignRepo
	advertisers *mockAdvertiserRepo
	days        *mockDayStore
	moderation  *mockModeration
	files       *mockFileStore
	generator   *mockGenerator
	svc         *CampaignService
}

func newCampaignFixture(t *testing.T) *campaignFixture {
	t.Helper()
	f := &campaignFixture{
		campaigns:   &mockCampaignRepo{},
		advertisers: &mockAdvertiserRepo{},
		days:        &mockDayStore{},
		moderation:  &mockModeration{},
		files:       &mockFileStore{},
		generator:   &mockGenerator{},
	}
	f.svc = NewCampaignService(f.campaigns, f.advertisers, f.days,
		f.moderation, f.files, f.generator, discardLogger())
	t.Cleanup(func() {
		f.campaigns.AssertExpectations(t)
		f.advertisers.AssertExpectations(t)
		f.days.AssertExpectations(t)
		f.moderation.AssertExpectations(t)
		f.files.AssertExpectations(t)
		f.generator.AssertExpectations(t)
	})
	return f
}

func (f *campaignFixture) knownAdvertiser() domain.Advertiser {
	adv := domain.Advertiser{ID: uuid.New(), Name: "Acme"}
	f.advertisers.On("GetByID", mock.Anything, adv.ID).Return(&adv, nil)
	return adv
}

func validInput() port.CampaignInput {
	return port.CampaignInput{
		ImpressionsLimit:  100,
		ClicksLimit:       50,
		CostPerImpression: 1.5,
		CostPerClick:      2.5,
		AdTitle:           "Spring sale",
		AdText:            "Everything half off",
		StartDay:          5,
		EndDay:            10,
	}
}

func TestCreateCampaign(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()
	in := validInput()

	f.days.On("Current", mock.Anything).Return(3, nil)
	f.moderation.On("ContainsDisallowed", mock.Anything, "Spring sale Everything half off").
		Return(false, nil)
	f.campaigns.On("Create", mock.Anything, mock.MatchedBy(func(c domain.Campaign) bool {
		return c.AdvertiserID == adv.ID &&
			c.ImpressionsLimit == 100 &&
			c.ClicksLimit == 50 &&
			c.StartDay == 5 && c.EndDay == 10 &&
			c.ID != uuid.Nil
	})).Return(nil)

	campaign, err := f.svc.Create(context.Background(), adv.ID, in)
	require.NoError(t, err)
	assert.Equal(t, adv.ID, campaign.AdvertiserID)
}

func TestCreateCampaignUnknownAdvertiser(t *testing.T) {
	f := newCampaignFixture(t)
	id := uuid.New()
	f.advertisers.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.Create(context.Background(), id, validInput())
	assert.ErrorIs(t, err, domain.ErrAdvertiserNotFound)
}

func TestCreateCampaignWindowValidation(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		day      int
	}{
		{"start in past", 2, 10, 3},
		{"end in past", 5, 2, 3},
		{"end before start", 10, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCampaignFixture(t)
			adv := f.knownAdvertiser()
			in := validInput()
			in.StartDay, in.EndDay = tt.start, tt.end
			f.days.On("Current", mock.Anything).Return(tt.day, nil)

			_, err := f.svc.Create(context.Background(), adv.ID, in)
			assert.ErrorIs(t, err, domain.ErrCampaignInPast)
		})
	}
}

func TestCreateCampaignClickLimitTooHigh(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()
	in := validInput()
	in.ClicksLimit = 200

	f.days.On("Current", mock.Anything).Return(0, nil)

	_, err := f.svc.Create(context.Background(), adv.ID, in)
	assert.ErrorIs(t, err, domain.ErrClickLimitTooHigh)
}

func TestCreateCampaignModeration(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()
	in := validInput()

	f.days.On("Current", mock.Anything).Return(0, nil)
	f.moderation.On("ContainsDisallowed", mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.svc.Create(context.Background(), adv.ID, in)
	assert.ErrorIs(t, err, domain.ErrDisallowedContent)
}

func TestCreateCampaignModerationUnavailable(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	f.days.On("Current", mock.Anything).Return(0, nil)
	f.moderation.On("ContainsDisallowed", mock.Anything, mock.Anything).
		Return(false, domain.ErrModerationUnavailable)

	_, err := f.svc.Create(context.Background(), adv.ID, validInput())
	assert.ErrorIs(t, err, domain.ErrModerationUnavailable)
}

func TestUpdateCampaignFrozenAfterStart(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	existing := domain.Campaign{
		ID:               uuid.New(),
		AdvertiserID:     adv.ID,
		ImpressionsLimit: 100,
		ClicksLimit:      50,
		StartDay:         5,
		EndDay:           10,
	}
	f.campaigns.On("GetLive", mock.Anything, existing.ID).Return(&existing, nil)
	f.days.On("Current", mock.Anything).Return(7, nil) // already running

	in := validInput()
	in.ImpressionsLimit = 200

	_, err := f.svc.Update(context.Background(), existing.ID, adv.ID, in)
	assert.ErrorIs(t, err, domain.ErrCampaignStarted)
}

func TestUpdateCampaignCostStaysEditableAfterStart(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	existing := domain.Campaign{
		ID:               uuid.New(),
		AdvertiserID:     adv.ID,
		ImpressionsLimit: 100,
		ClicksLimit:      50,
		StartDay:         5,
		EndDay:           10,
		CostPerClick:     1,
	}
	f.campaigns.On("GetLive", mock.Anything, existing.ID).Return(&existing, nil)
	f.days.On("Current", mock.Anything).Return(5, nil) // start day itself

	in := validInput()
	in.CostPerClick = 9

	f.moderation.On("ContainsDisallowed", mock.Anything, mock.Anything).Return(false, nil)
	f.campaigns.On("Update", mock.Anything, mock.MatchedBy(func(c domain.Campaign) bool {
		return c.ID == existing.ID && c.CostPerClick == 9
	})).Return(nil)

	updated, err := f.svc.Update(context.Background(), existing.ID, adv.ID, in)
	require.NoError(t, err)
	assert.Equal(t, float64(9), updated.CostPerClick)
}

func TestUpdateCampaignAccessDenied(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	other := domain.Campaign{ID: uuid.New(), AdvertiserID: uuid.New()}
	f.campaigns.On("GetLive", mock.Anything, other.ID).Return(&other, nil)

	_, err := f.svc.Update(context.Background(), other.ID, adv.ID, validInput())
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestDeleteCampaign(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	existing := domain.Campaign{ID: uuid.New(), AdvertiserID: adv.ID}
	f.campaigns.On("GetLive", mock.Anything, existing.ID).Return(&existing, nil)
	f.campaigns.On("MarkDeleted", mock.Anything, existing.ID).Return(nil)

	assert.NoError(t, f.svc.Delete(context.Background(), existing.ID, adv.ID))
}

func TestDeleteCampaignNotFound(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()
	id := uuid.New()

	f.campaigns.On("GetLive", mock.Anything, id).Return(nil, nil)

	err := f.svc.Delete(context.Background(), id, adv.ID)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestListCampaignsPaging(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	page, size := 2, 10
	wantLimit, wantOffset := 10, 20
	f.campaigns.On("List", mock.Anything, adv.ID, &wantLimit, &wantOffset).
		Return([]domain.Campaign{}, nil)

	_, err := f.svc.List(context.Background(), adv.ID, &page, &size)
	assert.NoError(t, err)
}

func TestAttachImage(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	existing := domain.Campaign{ID: uuid.New(), AdvertiserID: adv.ID}
	file := strings.NewReader("png bytes")

	f.campaigns.On("GetLive", mock.Anything, existing.ID).Return(&existing, nil)
	f.files.On("Store", mock.Anything, file, "png", int64(9)).
		Return("campaigns/abc.png", nil)
	f.campaigns.On("SetImagePath", mock.Anything, existing.ID, "campaigns/abc.png").
		Return(nil)

	path, err := f.svc.AttachImage(context.Background(), existing.ID, adv.ID, file, "png", 9)
	require.NoError(t, err)
	assert.Equal(t, "campaigns/abc.png", path)
}

func TestGenerateText(t *testing.T) {
	f := newCampaignFixture(t)
	adv := f.knownAdvertiser()

	f.generator.On("Generate", mock.Anything, "Acme", "Spring sale").
		Return("Buy everything now.", nil)

	text, err := f.svc.GenerateText(context.Background(), adv.ID, "Spring sale")
	require.NoError(t, err)
	assert.Equal(t, "Buy everything now.", text)
}
