package market

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/balumaqsud/artily-client/listing"
)

const memberFields = `
	_id
	memberType
	memberStatus
	memberNick
	memberPhone
	memberImage
	memberAddress
	memberDesc
	memberProducts
	memberArticles
	memberFollowers
	memberFollowings
	memberLikes
	memberViews
	createdAt
	updatedAt`

const getMembersQuery = `query getMembers($input: MembersInquiry!) {
	getMembers(input: $input) {
		list {` + memberFields + `
		}
		totalCount
	}
}`

const getMemberQuery = `query getMember($memberId: String!) {
	getMember(memberId: $memberId) {` + memberFields + `
	}
}`

const likeTargetMemberMutation = `mutation likeTargetMember($memberId: String!) {
	likeTargetMember(memberId: $memberId) {` + memberFields + `
	}
}`

const subscribeMutation = `mutation subscribe($memberId: String!) {
	subscribe(memberId: $memberId) {` + memberFields + `
	}
}`

const unsubscribeMutation = `mutation unsubscribe($memberId: String!) {
	unsubscribe(memberId: $memberId) {` + memberFields + `
	}
}`

const followerFields = `
	_id
	followingId
	followerId
	createdAt
	updatedAt
	followerData {` + memberFields + `
	}`

const followingFields = `
	_id
	followingId
	followerId
	createdAt
	updatedAt
	followingData {` + memberFields + `
	}`

const getMemberFollowersQuery = `query getMemberFollowers($input: FollowInquiry!) {
	getMemberFollowers(input: $input) {
		list {` + followerFields + `
		}
		totalCount
	}
}`

const getMemberFollowingsQuery = `query getMemberFollowings($input: FollowInquiry!) {
	getMemberFollowings(input: $input) {
		list {` + followingFields + `
		}
		totalCount
	}
}`

const updateMemberMutation = `mutation updateMember($input: MemberUpdate!) {
	updateMember(input: $input) {
		accessToken
		member {` + memberFields + `
		}
	}
}`

// MemberUpdate patches the authenticated member's own profile.
type MemberUpdate struct {
	Nick        string `json:"memberNick,omitempty"`
	Phone       string `json:"memberPhone,omitempty"`
	Image       string `json:"memberImage,omitempty"`
	Address     string `json:"memberAddress,omitempty"`
	Description string `json:"memberDesc,omitempty"`
}

// ProfileResult is the server's answer to a profile update: the authoritative
// member fields plus an optionally rotated access token. Feed it to the
// session manager's RefreshFromMutation so the session reflects exactly what
// the server confirmed.
type ProfileResult struct {
	AccessToken string `json:"accessToken,omitempty"`
	Member      Member `json:"member"`
}

// Members exposes member (artist) directory and profile operations.
type Members struct {
	do Doer
}

// NewMembers returns the member service backed by the given transport.
func NewMembers(do Doer) *Members {
	return &Members{do: do}
}

// List runs a paginated member query, typically filtered to artists.
func (s *Members) List(ctx context.Context, inq listing.Inquiry[MembersSearch]) (Page[Member], error) {
	var out struct {
		GetMembers Page[Member] `json:"getMembers"`
	}
	if err := s.do.Do(ctx, "getMembers", getMembersQuery, inq.Variables(), &out); err != nil {
		return Page[Member]{}, err
	}
	return out.GetMembers, nil
}

// Get fetches a single member by id.
func (s *Members) Get(ctx context.Context, memberID string) (Member, error) {
	if memberID == "" {
		return Member{}, goerrors.New("member id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		GetMember Member `json:"getMember"`
	}
	if err := s.do.Do(ctx, "getMember", getMemberQuery, map[string]any{"memberId": memberID}, &out); err != nil {
		return Member{}, err
	}
	return out.GetMember, nil
}

// Like toggles the caller's like on a member and returns the updated member.
func (s *Members) Like(ctx context.Context, memberID string) (Member, error) {
	if memberID == "" {
		return Member{}, goerrors.New("member id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		LikeTargetMember Member `json:"likeTargetMember"`
	}
	if err := s.do.Do(ctx, "likeTargetMember", likeTargetMemberMutation, map[string]any{"memberId": memberID}, &out); err != nil {
		return Member{}, err
	}
	return out.LikeTargetMember, nil
}

// Follow subscribes the caller to a member's activity and returns the
// updated member.
func (s *Members) Follow(ctx context.Context, memberID string) (Member, error) {
	if memberID == "" {
		return Member{}, goerrors.New("member id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		Subscribe Member `json:"subscribe"`
	}
	if err := s.do.Do(ctx, "subscribe", subscribeMutation, map[string]any{"memberId": memberID}, &out); err != nil {
		return Member{}, err
	}
	return out.Subscribe, nil
}

// Unfollow removes the caller's subscription and returns the updated member.
func (s *Members) Unfollow(ctx context.Context, memberID string) (Member, error) {
	if memberID == "" {
		return Member{}, goerrors.New("member id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		Unsubscribe Member `json:"unsubscribe"`
	}
	if err := s.do.Do(ctx, "unsubscribe", unsubscribeMutation, map[string]any{"memberId": memberID}, &out); err != nil {
		return Member{}, err
	}
	return out.Unsubscribe, nil
}

// Followers runs a paginated query over the members following the member the
// search names. The my-page follower board.
func (s *Members) Followers(ctx context.Context, inq listing.Inquiry[FollowsSearch]) (Page[Follow], error) {
	if inq.Search.FollowingID == "" {
		return Page[Follow]{}, goerrors.New("member id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		GetMemberFollowers Page[Follow] `json:"getMemberFollowers"`
	}
	if err := s.do.Do(ctx, "getMemberFollowers", getMemberFollowersQuery, inq.Variables(), &out); err != nil {
		return Page[Follow]{}, err
	}
	return out.GetMemberFollowers, nil
}

// Followings runs a paginated query over the members the member the search
// names is following.
func (s *Members) Followings(ctx context.Context, inq listing.Inquiry[FollowsSearch]) (Page[Follow], error) {
	if inq.Search.FollowerID == "" {
		return Page[Follow]{}, goerrors.New("member id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		GetMemberFollowings Page[Follow] `json:"getMemberFollowings"`
	}
	if err := s.do.Do(ctx, "getMemberFollowings", getMemberFollowingsQuery, inq.Variables(), &out); err != nil {
		return Page[Follow]{}, err
	}
	return out.GetMemberFollowings, nil
}

// UpdateProfile patches the caller's own profile and returns the server's
// authoritative result, including any rotated token.
func (s *Members) UpdateProfile(ctx context.Context, update MemberUpdate) (ProfileResult, error) {
	var out struct {
		UpdateMember ProfileResult `json:"updateMember"`
	}
	if err := s.do.Do(ctx, "updateMember", updateMemberMutation, map[string]any{"input": update}, &out); err != nil {
		return ProfileResult{}, err
	}
	return out.UpdateMember, nil
}
