package definition

import (
	"context"
	"testing"

	"github.com/almanac-cloud/almanac/internal/definition/testutil"
	"github.com/almanac-cloud/almanac/internal/models"
	schema "github.com/almanac-cloud/almanac/pkg/definition"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ImporterTestSuite struct {
	suite.Suite
	db       *gorm.DB
	importer *Importer
}

func TestImporterSuite(t *testing.T) {
	suite.Run(t, new(ImporterTestSuite))
}

func (s *ImporterTestSuite) SetupTest() {
	s.db = testutil.OpenTestDB(s.T())
	s.importer = NewImporter(s.db)
}

func (s *ImporterTestSuite) TearDownTest() {
	testutil.CloseDB(s.db)
}

func (s *ImporterTestSuite) TestApplyCreatesRecord() {
	def, err := schema.Parse([]byte(testutil.SampleAutomation))
	s.Require().NoError(err)

	userID := uuid.New()
	am, err := s.importer.Apply(context.Background(), userID, def)
	s.Require().NoError(err)

	s.Equal("weekly-report", am.Name)
	s.Equal(userID, am.UserID)
	s.Equal(models.TriggerTypeSchedule, am.TriggerType)
	s.Equal("0 9 * * 1", am.ScheduleCron)
	s.Equal(models.AutomationStatusEnabled, am.Status)
	s.Equal("#reports", am.Metadata["channel"])

	testutil.AssertCount(s.T(), s.db, &models.Automation{}, 1)
}

func (s *ImporterTestSuite) TestApplyIsIdempotentPerUserAndName() {
	def, err := schema.Parse([]byte(testutil.SampleAutomation))
	s.Require().NoError(err)

	userID := uuid.New()
	first, err := s.importer.Apply(context.Background(), userID, def)
	s.Require().NoError(err)

	def.Spec.Trigger.ScheduleCron = "0 10 * * 1"
	second, err := s.importer.Apply(context.Background(), userID, def)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("0 10 * * 1", second.ScheduleCron)
	testutil.AssertCount(s.T(), s.db, &models.Automation{}, 1)
}

func (s *ImporterTestSuite) TestApplySeparatesUsers() {
	def, err := schema.Parse([]byte(testutil.SampleAutomation))
	s.Require().NoError(err)

	_, err = s.importer.Apply(context.Background(), uuid.New(), def)
	s.Require().NoError(err)
	_, err = s.importer.Apply(context.Background(), uuid.New(), def)
	s.Require().NoError(err)

	testutil.AssertCount(s.T(), s.db, &models.Automation{}, 2)
}

func (s *ImporterTestSuite) TestApplyRejectsInvalidDefinition() {
	def := &schema.Definition{APIVersion: "v2", Kind: schema.KindAutomation}
	_, err := s.importer.Apply(context.Background(), uuid.New(), def)
	s.Error(err)
}
