// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/papers-list/pkg/types"
)

const samplePubMedXML = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2024//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_240101.dtd">
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">38012345</PMID>
      <Article PubModel="Print">
        <Journal>
          <JournalIssue CitedMedium="Internet">
            <PubDate><Year>2023</Year><Month>Nov</Month></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Efficacy of <i>mRNA-1273</i> in adults.</ArticleTitle>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y">
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <AffiliationInfo>
              <Affiliation>Moderna Therapeutics, Cambridge, MA. Electronic address: jane.doe@modernatx.com.</Affiliation>
            </AffiliationInfo>
            <AffiliationInfo>
              <Affiliation>Second affiliation ignored.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author ValidYN="Y">
            <LastName>Lee</LastName>
            <ForeName>John</ForeName>
            <AffiliationInfo>
              <Affiliation>Dept of Medicine, Harvard University</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author ValidYN="Y">
            <CollectiveName>COVE Study Group</CollectiveName>
          </Author>
        </AuthorList>
      </Article>
      <CommentsCorrectionsList>
        <CommentsCorrections RefType="Cites"><PMID Version="1">11111111</PMID></CommentsCorrections>
      </CommentsCorrectionsList>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">9876543</PMID>
      <Article>
        <Journal><JournalIssue><PubDate><MedlineDate>1998 Dec-1999 Jan</MedlineDate></PubDate></JournalIssue></Journal>
        <ArticleTitle>Older   record</ArticleTitle>
        <AuthorList>
          <Author><LastName>Solo</LastName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">5555</PMID>
      <Article>
        <Journal><JournalIssue><PubDate><Season>Spring</Season></PubDate></JournalIssue></Journal>
        <ArticleTitle>No date, no authors</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestParsePubMedXML(t *testing.T) {
	papers, err := ParsePubMedXML([]byte(samplePubMedXML))
	require.NoError(t, err)
	require.Len(t, papers, 3)

	first := papers[0]
	assert.Equal(t, "38012345", first.ID)
	assert.Equal(t, "Efficacy of mRNA-1273 in adults.", first.Title)
	assert.Equal(t, "2023", first.PublicationDate)
	assert.Equal(t, SourcePubMed, first.Source)
	require.Len(t, first.Authors, 3)
	assert.Equal(t, types.Author{
		Name:        "Jane Doe",
		Affiliation: "Moderna Therapeutics, Cambridge, MA. Electronic address: jane.doe@modernatx.com.",
		Email:       "jane.doe@modernatx.com",
	}, first.Authors[0])
	assert.Equal(t, "John Lee", first.Authors[1].Name)
	assert.Empty(t, first.Authors[1].Email)
	assert.Equal(t, types.Author{Name: "COVE Study Group"}, first.Authors[2])

	second := papers[1]
	assert.Equal(t, "9876543", second.ID)
	assert.Equal(t, "Older record", second.Title)
	assert.Equal(t, "1998", second.PublicationDate)
	assert.Equal(t, []types.Author{{Name: "Solo"}}, second.Authors)

	third := papers[2]
	assert.Equal(t, types.UnknownDate, third.PublicationDate)
	assert.Empty(t, third.Authors)
}

func TestParsePubMedXML_Empty(t *testing.T) {
	papers, err := ParsePubMedXML([]byte(`<PubmedArticleSet></PubmedArticleSet>`))
	require.NoError(t, err)
	assert.Empty(t, papers)
}

func TestParsePubMedXML_Malformed(t *testing.T) {
	_, err := ParsePubMedXML([]byte(`<PubmedArticleSet><PMID>1</PMID`))
	assert.Error(t, err)
}
